// Package config provides configuration parsing for wayfind projects.
//
// The configuration is stored in wayfind.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "myapp",
//	  "manifest": "routes.yaml",
//	  "strict": false,
//	  "server": {
//	    "host": "localhost",
//	    "port": 4000
//	  },
//	  "archive": {
//	    "backend": "disk",
//	    "dir": ".wayfind/archive"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// The s3 archive backend additionally takes "bucket", "prefix" and
// "region".
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Manifest:", cfg.ManifestPath())
package config
