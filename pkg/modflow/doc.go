// Package modflow generates and reads MODFLOW-USG transport package input
// files. It provides the Model/PackageContext plumbing (output paths, heading
// banners, file-unit bookkeeping), the transient stress-period list used by
// list-type boundary packages, and the DDF (density-driven flow) and PCB
// (prescribed concentration boundary) package writers.
package modflow
