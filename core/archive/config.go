package archive

// Config holds configuration for the local archive directory.
type Config struct {
	// Dir is the data directory containing the archives and indexes.
	Dir string `mapstructure:"dir" default:"./data"`
	// RootFile is the root-index file name, relative to Dir.
	RootFile string `mapstructure:"root_file" default:"root"`
	// EncodingFile is the encoding-table file name, relative to Dir.
	EncodingFile string `mapstructure:"encoding_file" default:"encoding"`
	// IndexFile is the archive-location index file name, relative to Dir.
	IndexFile string `mapstructure:"index_file" default:"archive.idx"`
	// Locale selects which root-index entries are retained (e.g. enUS).
	Locale string `mapstructure:"locale" default:"enUS"`
	// MaxOpenArchives bounds the open file-handle pool.
	MaxOpenArchives int `mapstructure:"max_open_archives" default:"16"`
}
