package salonapi

// TokenProvider выдает bearer-токен текущей сессии.
// Внедряется явно, токен никогда не читается из глобального состояния.
type TokenProvider interface {
	Token() (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
