package config

const (
	defaultDataDir      = "./data"
	defaultManifest     = "train.csv"
	defaultLandmarksDir = "train_landmarks"
	defaultSplitDir     = "splited_data"
	defaultIndexColumn  = "sequence_id"
	defaultRightHand    = "right_hand"
	defaultLeftHand     = "left_hand"
	defaultWorkers      = 16
	defaultCompression  = "snappy"
	defaultExtension    = ".parquet"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	maxWorkers          = 512
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			Manifest:     defaultManifest,
			LandmarksDir: defaultLandmarksDir,
			SplitDir:     defaultSplitDir,
		},
		Dataset: Dataset{
			IndexColumn: defaultIndexColumn,
			RightHand:   defaultRightHand,
			LeftHand:    defaultLeftHand,
			Extension:   defaultExtension,
		},
		Split: Split{
			Workers:     defaultWorkers,
			Compression: defaultCompression,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
