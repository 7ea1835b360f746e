package modflow

// Version is the mfpack release version, stamped into package headings and
// reported by the CLI version command.
const Version = "0.1.0"
