package validation

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,len=10"`
	Title string `json:"title" binding:"omitempty,min=1,max=255"`
}

func bindSample(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init()
	var s sample
	return binding.JSON.BindBody([]byte(body), &s)
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	err := bindSample(t, `{"email":"nope","phone":"123"}`)
	if err == nil {
		t.Fatal("expected validation error")
	}
	details := ToDetails(err)
	if _, ok := details["email"]; !ok {
		t.Fatalf("details %v missing json field name 'email'", details)
	}
	if msg := details["phone"]; !strings.Contains(msg, "10") {
		t.Fatalf("phone message %q does not mention required length", msg)
	}
}

func TestToDetailsRequired(t *testing.T) {
	err := bindSample(t, `{}`)
	if err == nil {
		t.Fatal("expected validation error")
	}
	details := ToDetails(err)
	if details["email"] != "is required" {
		t.Fatalf("email message = %q, want 'is required'", details["email"])
	}
}

func TestToDetailsInvalidJSON(t *testing.T) {
	err := bindSample(t, `{not json`)
	if err == nil {
		t.Fatal("expected error")
	}
	details := ToDetails(err)
	if details["payload"] == "" {
		t.Fatalf("details %v missing payload error", details)
	}
}

func TestToDetailsNil(t *testing.T) {
	if d := ToDetails(nil); d != nil {
		t.Fatalf("ToDetails(nil) = %v, want nil", d)
	}
}
