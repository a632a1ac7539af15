// Package config loads vglob configuration.
//
// The configuration is stored in vglob.json. Every field is optional; a
// missing file yields the defaults from New.
//
// # Configuration File Structure
//
//	{
//	  "options": {
//	    "dot": true,
//	    "noExtGlob": false
//	  },
//	  "cacheSize": 512,
//	  "matchTimeout": "100ms",
//	  "server": {
//	    "host": "localhost",
//	    "port": 7411,
//	    "readTimeout": "10s",
//	    "maxPaths": 10000
//	  },
//	  "metrics": {
//	    "namespace": "vglob"
//	  },
//	  "tracing": {
//	    "tracerName": "github.com/vango-dev/vglob"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
