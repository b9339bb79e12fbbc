// Command divebot reports NOAA tide predictions, water temperature and
// forecasts for dive sites, and coordinates guided-dive requests.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
