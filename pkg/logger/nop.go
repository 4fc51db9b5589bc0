package logger

// NopLogger отбрасывает все сообщения. Используется в тестах и там,
// где компонент обязателен, а вывод не нужен.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (NopLogger) Log(string, ...interface{}) {}
func (NopLogger) SetPrefix(string)           {}
