// Package files discovers analysable input files.
//
// The report command accepts files, directories and glob patterns;
// Discovery expands them into the .xlsx, .xlsm and .csv files the loader
// reads, skipping Office lock files such as ~$sales.xlsx.
//
//	discovery := files.NewDiscovery("")
//	paths, err := discovery.ExpandInputs([]string{"exports/", "march.csv"})
package files
