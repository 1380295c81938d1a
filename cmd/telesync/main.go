package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/telesync/bootstrap"
	"github.com/fulldump/telesync/configuration"
)

var banner = `
  _       _                             
 | |_ ___| | ___  ___ _   _ _ __   ___  
 | __/ _ \ |/ _ \/ __| | | | '_ \ / __| 
 | ||  __/ |  __/\__ \ |_| | | | | (__  
  \__\___|_|\___||___/\__, |_| |_|\___| 
                      |___/  version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	start, _ := bootstrap.Bootstrap(c)
	start()
}
