package miniapp

// Контракт окружения Telegram WebApp. Реальную реализацию дает хост
// (мост в браузере); ядро зависит только от интерфейсов.

type ThemeParams struct {
	BgColor         string
	TextColor       string
	HintColor       string
	LinkColor       string
	ButtonColor     string
	ButtonTextColor string
}

// Интенсивность тактильного отклика
const (
	ImpactLight  = "light"
	ImpactMedium = "medium"
	ImpactHeavy  = "heavy"
)

const (
	NotifySuccess = "success"
	NotifyError   = "error"
)

// ActionButton - главная кнопка или кнопка "назад" хоста
type ActionButton interface {
	Show(label string)
	Hide()
	OnClick(fn func())
}

type Host interface {
	Ready()
	Expand()

	// InitData - подписанная строка идентификации, уходит в каждый запрос
	InitData() string
	Theme() ThemeParams

	HapticImpact(style string)
	HapticNotify(kind string)

	MainButton() ActionButton
	BackButton() ActionButton

	// OpenLink - открытие внешней ссылки (платежный провайдер)
	OpenLink(url string)

	// Notify - нефатальное уведомление пользователю
	Notify(text string)
}

type noopButton struct{}

func (noopButton) Show(string)    {}
func (noopButton) Hide()          {}
func (noopButton) OnClick(func()) {}

// NoopHost - заглушка хоста для тестов и запуска вне Telegram
type NoopHost struct {
	InitDataValue string
}

func (h *NoopHost) Ready()                   {}
func (h *NoopHost) Expand()                  {}
func (h *NoopHost) InitData() string         { return h.InitDataValue }
func (h *NoopHost) Theme() ThemeParams       { return ThemeParams{} }
func (h *NoopHost) HapticImpact(string)      {}
func (h *NoopHost) HapticNotify(string)      {}
func (h *NoopHost) MainButton() ActionButton { return noopButton{} }
func (h *NoopHost) BackButton() ActionButton { return noopButton{} }
func (h *NoopHost) OpenLink(string)          {}
func (h *NoopHost) Notify(string)            {}
