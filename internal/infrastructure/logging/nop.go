package logging

// NopLogger discards every record. Used by tests and by components wired
// before the real logger is configured.
type NopLogger struct{}

var _ Logger = NopLogger{}

func NewNopLogger() NopLogger { return NopLogger{} }

func (NopLogger) Init() {}

func (NopLogger) Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {}
func (NopLogger) Debugf(template string, args ...any)                                     {}

func (NopLogger) Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {}
func (NopLogger) Infof(template string, args ...any)                                     {}

func (NopLogger) Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {}
func (NopLogger) Warnf(template string, args ...any)                                     {}

func (NopLogger) Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {}
func (NopLogger) Errorf(template string, args ...any)                                     {}

func (NopLogger) Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {}
func (NopLogger) Fatalf(template string, args ...any)                                     {}
