package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func changePasswordRequest(cookie string, form url.Values, jsonClient bool) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/api/settings/change-password", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Cookie", cookie)
	if jsonClient {
		request.Header.Set("Accept", "application/json")
	}
	return request
}

func TestChangePasswordValidation(t *testing.T) {
	app, handler := newTestApp(t)
	user := createTestUser(t, handler, "owner", "owner@example.com")
	cookie := loginCookie(t, app, user.Email)

	tests := []struct {
		name    string
		form    url.Values
		status  int
		message string
	}{
		{
			name:    "wrong current password",
			form:    url.Values{"current_password": {"WrongPass1"}, "new_password": {"NewStrong1"}, "confirm_password": {"NewStrong1"}},
			status:  http.StatusUnauthorized,
			message: "invalid current password",
		},
		{
			name:    "confirmation mismatch",
			form:    url.Values{"current_password": {testPassword}, "new_password": {"NewStrong1"}, "confirm_password": {"NewStrong2"}},
			status:  http.StatusBadRequest,
			message: "password mismatch",
		},
		{
			name:    "too short",
			form:    url.Values{"current_password": {testPassword}, "new_password": {"short"}, "confirm_password": {"short"}},
			status:  http.StatusBadRequest,
			message: "invalid input",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			response, body := doRequest(t, app, changePasswordRequest(cookie, testCase.form, true))
			if response.StatusCode != testCase.status {
				t.Fatalf("expected status %d, got %d", testCase.status, response.StatusCode)
			}
			if message := readAPIError(t, body); message != testCase.message {
				t.Fatalf("expected error %q, got %q", testCase.message, message)
			}
		})
	}
}

func TestChangePasswordRotatesCredentials(t *testing.T) {
	app, handler := newTestApp(t)
	user := createTestUser(t, handler, "owner", "owner@example.com")
	cookie := loginCookie(t, app, user.Email)

	form := url.Values{"current_password": {testPassword}, "new_password": {"NewStrong1"}, "confirm_password": {"NewStrong1"}}
	response, _ := doRequest(t, app, changePasswordRequest(cookie, form, false))
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	flashValue := responseCookieValue(response.Cookies(), flashCookieName)
	if flashValue == "" {
		t.Fatal("expected success flash")
	}

	_, body := authedGET(t, app, cookie+"; "+flashCookieName+"="+flashValue, "/settings")
	if !strings.Contains(body, "Password changed") {
		t.Fatal("expected localized success message on settings page")
	}

	if _, err := handler.authService.Authenticate(user.Email, testPassword); err == nil {
		t.Fatal("expected old password to stop working")
	}
	if _, err := handler.authService.Authenticate(user.Email, "NewStrong1"); err != nil {
		t.Fatalf("expected new password to work: %v", err)
	}
}
