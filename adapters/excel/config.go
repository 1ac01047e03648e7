package excel

// Config holds configuration for a spreadsheet family source
type Config struct {
	FilePath string `json:"file_path"`
	// Sheet is the worksheet to read from .xlsx files; empty means the first sheet
	Sheet string `json:"sheet"`
}

// DefaultConfig returns the configuration used when only a path is known
func DefaultConfig(filePath string) Config {
	return Config{FilePath: filePath}
}
