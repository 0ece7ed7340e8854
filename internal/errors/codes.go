package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeLoggerInit       Code = "LOGGER_INIT_ERROR"
	CodeFormatError      Code = "FORMAT_ERROR"
	CodeServerError      Code = "SERVER_ERROR"
)

func (c Code) String() string {
	return string(c)
}
