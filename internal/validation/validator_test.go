package validation

import (
	"errors"
	"testing"
)

type sampleForm struct {
	Title    string `json:"title" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Date     string `json:"expectedDate" validate:"required,date"`
	Kind     string `json:"type" validate:"producttype"`
	Password string `json:"password" validate:"strongpassword"`
}

func TestCheckReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Check(sampleForm{
		Title:    "   ",
		Email:    "nope",
		Date:     "17/10/2026",
		Kind:     "door",
		Password: "short",
	})
	fe, ok := AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	for _, field := range []string{"title", "email", "expectedDate", "type", "password"} {
		if _, ok := fe[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, fe)
		}
	}
	if fe["title"] != "is required" {
		t.Fatalf("unexpected title message: %q", fe["title"])
	}
}

func TestCheckValid(t *testing.T) {
	v := New()
	err := v.Check(sampleForm{
		Title:    "Cruz Window Job",
		Email:    "a.cruz@example.com",
		Date:     "2026-10-17",
		Kind:     "completeunit",
		Password: "Secret1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckPassesThroughNonStruct(t *testing.T) {
	err := New().Check("not a form")
	if err == nil {
		t.Fatalf("expected an error for a non-struct value")
	}
	if _, ok := AsFieldErrors(err); ok {
		t.Fatalf("non-struct failure should not become FieldErrors: %v", err)
	}
}

func TestFieldErrorsWrapped(t *testing.T) {
	err := errors.Join(errors.New("context"), FieldErrors{"title": "is required"})
	fe, ok := AsFieldErrors(err)
	if !ok || fe["title"] != "is required" {
		t.Fatalf("expected wrapped field errors, got %v", err)
	}
}

func TestPasswordProblems(t *testing.T) {
	cases := []struct {
		password string
		want     int
	}{
		{"Abc123", 0},
		{"Ab1", 1},
		{"abcdef1", 1},
		{"Abcdefg", 1},
		{"abc", 3},
		{"", 3},
		{"Àbcdef1", 1},
	}
	for _, tc := range cases {
		if got := len(PasswordProblems(tc.password)); got != tc.want {
			t.Fatalf("PasswordProblems(%q): expected %d problems, got %d", tc.password, tc.want, got)
		}
	}
}
