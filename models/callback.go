package models

// CallBackData - состояние воронки, упакованное в callback_data кнопки
type CallBackData struct {
	Command     string `json:"com"`
	City        string `json:"city"`
	ProductType string `json:"type"`
	District    string `json:"dist"`
	ProductID   string `json:"pID"`
}
