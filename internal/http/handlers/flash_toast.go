package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/labstack/echo/v5"
)

const (
	flashToastCookieName = "ccm_toast"
	flashToastMaxAge     = 30

	toastSuccess = "success"
	toastError   = "error"
	toastWarning = "warning"
	toastInfo    = "info"
)

// setFlashToast queues toast for the page the browser loads next.
func setFlashToast(c *echo.Context, toast viewmodels.ToastViewData) {
	toast, ok := cleanToast(toast)
	if !ok {
		return
	}
	value, err := encodeToast(toast)
	if err != nil {
		c.Logger().Warn("encode flash toast", "error", err)
		return
	}
	c.SetCookie(flashCookie(value, flashToastMaxAge))
}

// popFlashToast returns the queued toast, if any, and clears it.
func popFlashToast(c *echo.Context) *viewmodels.ToastViewData {
	cookie, err := c.Cookie(flashToastCookieName)
	if err != nil || cookie == nil {
		return nil
	}
	c.SetCookie(flashCookie("", -1))

	toast, err := decodeToast(cookie.Value)
	if err != nil {
		return nil
	}
	toast, ok := cleanToast(toast)
	if !ok {
		return nil
	}
	return &toast
}

// redirectToast queues a toast and ends the dialog submission.
func redirectToast(c *echo.Context, location string, toast viewmodels.ToastViewData) error {
	setFlashToast(c, toast)
	return seeOther(c, location)
}

func cleanToast(toast viewmodels.ToastViewData) (viewmodels.ToastViewData, bool) {
	toast.Category = strings.ToLower(strings.TrimSpace(toast.Category))
	switch toast.Category {
	case toastSuccess, toastError, toastWarning, toastInfo:
	default:
		toast.Category = toastInfo
	}
	toast.Title = strings.TrimSpace(toast.Title)
	toast.Description = strings.TrimSpace(toast.Description)
	return toast, toast.Title != "" || toast.Description != ""
}

func encodeToast(toast viewmodels.ToastViewData) (string, error) {
	payload, err := json.Marshal(toast)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

func decodeToast(value string) (viewmodels.ToastViewData, error) {
	var toast viewmodels.ToastViewData
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return toast, err
	}
	err = json.Unmarshal(raw, &toast)
	return toast, err
}

func flashCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     flashToastCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
