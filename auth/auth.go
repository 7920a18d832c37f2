package auth

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
)

// InitDataHeader - заголовок с подписанными данными Telegram WebApp.
// Подпись проверяет внешний хост; здесь из нее извлекается только
// идентификатор пользователя.
const InitDataHeader = "X-Telegram-Init-Data"

type BotAuth struct {
	admins map[int64]bool
}

var (
	instance *BotAuth
	once     sync.Once
)

// Возвращает синглтон BotAuth
func GetAuth() *BotAuth {
	once.Do(func() {
		adminIDsStr := os.Getenv("ADMIN_IDS")
		admins := make(map[int64]bool)

		for _, idStr := range strings.Split(adminIDsStr, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				continue
			}
			admins[id] = true
		}

		instance = &BotAuth{admins: admins}
	})

	return instance
}

// Проверяет, является ли пользователь админом
func (a *BotAuth) IsAdmin(chatID int64) bool {
	if a == nil || a.admins == nil {
		return false
	}
	return a.admins[chatID]
}

func (a *BotAuth) AdminIDs() []int64 {
	if a == nil || a.admins == nil {
		return nil
	}
	ids := make([]int64, 0, len(a.admins))
	for id := range a.admins {
		ids = append(ids, id)
	}
	return ids
}

type webAppUser struct {
	ID int64 `json:"id"`
}

// ParseInitData - извлекает ID пользователя из строки initData
// (query-string с json-полем user). 0 - если пользователя нет.
func ParseInitData(initData string) int64 {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return 0
	}
	raw := values.Get("user")
	if raw == "" {
		return 0
	}

	var user webAppUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return 0
	}
	return user.ID
}

// UserFromRequest - ID пользователя из заголовка запроса; 0 если его нет
func UserFromRequest(r *http.Request) int64 {
	return ParseInitData(r.Header.Get(InitDataHeader))
}
