package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// LoggerInitializationFailedMessageFormat reports a failure to build the application logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal command errors.
const ApplicationExecutionFailedMessage = "application failed"

// ConfigFileName is the name of the application configuration file.
const ConfigFileName = ".cattree.yaml"

// GlobalConfigDirectoryName is the directory under the user home holding the global configuration.
const GlobalConfigDirectoryName = ".cattree"
