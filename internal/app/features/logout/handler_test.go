package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/gracehub/internal/app/features/logout"
	"github.com/dalemusser/gracehub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleLogout_ClearsSessionCookie(t *testing.T) {
	h := logout.NewHandler(testutil.NewSessionManager(t), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/logout", testutil.MemberUser())
	rec := httptest.NewRecorder()
	h.HandleLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "gracehub-test" {
			found = true
			if c.MaxAge >= 0 {
				t.Errorf("cookie MaxAge = %d, want < 0", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected the session cookie to be expired")
	}
}

func TestHandleLogout_HTMLRedirectsHome(t *testing.T) {
	h := logout.NewHandler(testutil.NewSessionManager(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.HandleLogout(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("got %d to %q", rec.Code, rec.Header().Get("Location"))
	}
}
