package config

const (
	defaultStorageDir          = "~/.local/share/karaoke/data"
	defaultLogDir              = "~/.local/share/karaoke/logs"
	defaultAPIBind             = "127.0.0.1:7491"
	defaultEngine              = EngineAeneas
	defaultLanguage            = "en"
	defaultFallbackSeconds     = 2.0
	defaultAeneasPython        = "python3"
	defaultWhisperXModel       = "base"
	defaultWhisperXVADMethod   = "silero"
	defaultWidth               = 1920
	defaultHeight              = 1080
	defaultFPS                 = 30
	defaultBackgroundColor     = "#000000"
	defaultTextColor           = "#FFFFFF"
	defaultHighlightColor      = "#FFD700"
	defaultFontSize            = 48
	defaultLineHeight          = 60
	defaultLineGap             = 10
	defaultMarginBottom        = 200
	defaultSideMargin          = 100
	defaultVideoCodec          = "libx264"
	defaultAudioCodec          = "aac"
	defaultPreset              = "medium"
	defaultWorkflowPoll        = 2
	defaultWorkflowWorkers     = 1
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	maxCanvasDimension         = 7680
	maxFramesPerSecond         = 120
	supportedVADMethodPyannote = "pyannote"
)

// Alignment engine identifiers.
const (
	EngineAeneas  = "aeneas"
	EngineWhisper = "whisper"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StorageDir: defaultStorageDir,
			LogDir:     defaultLogDir,
			APIBind:    defaultAPIBind,
		},
		Alignment: Alignment{
			Engine:            defaultEngine,
			Language:          defaultLanguage,
			FallbackSeconds:   defaultFallbackSeconds,
			AeneasPython:      defaultAeneasPython,
			WhisperXModel:     defaultWhisperXModel,
			WhisperXVADMethod: defaultWhisperXVADMethod,
		},
		Render: Render{
			Width:           defaultWidth,
			Height:          defaultHeight,
			FPS:             defaultFPS,
			BackgroundColor: defaultBackgroundColor,
			TextColor:       defaultTextColor,
			HighlightColor:  defaultHighlightColor,
			FontSize:        defaultFontSize,
			LineHeight:      defaultLineHeight,
			LineGap:         defaultLineGap,
			MarginBottom:    defaultMarginBottom,
			SideMargin:      defaultSideMargin,
			VideoCodec:      defaultVideoCodec,
			AudioCodec:      defaultAudioCodec,
			Preset:          defaultPreset,
		},
		Workflow: Workflow{
			PollInterval: defaultWorkflowPoll,
			Workers:      defaultWorkflowWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
