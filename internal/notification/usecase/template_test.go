package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/demirti/cverse-lms/internal/notification/entity"
)

func TestRenderTokens(t *testing.T) {
	tests := []struct {
		name   string
		tpl    string
		values map[string]string
		want   string
	}{
		{
			name:   "substitutes known tokens",
			tpl:    "New message from {{sender}} in {{room}}",
			values: map[string]string{"sender": "Ana", "room": "Cohort 12"},
			want:   "New message from Ana in Cohort 12",
		},
		{
			name:   "unknown token stays literal",
			tpl:    "Due {{due}} for {{title}}",
			values: map[string]string{"title": "Lab 3"},
			want:   "Due {{due}} for Lab 3",
		},
		{
			name:   "no values returns template unchanged",
			tpl:    "Hello {{name}}",
			values: nil,
			want:   "Hello {{name}}",
		},
		{
			name:   "repeated token replaced everywhere",
			tpl:    "{{title}}: {{title}} graded",
			values: map[string]string{"title": "Quiz"},
			want:   "Quiz: Quiz graded",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderTokens(tc.tpl, tc.values); got != tc.want {
				t.Errorf("renderTokens() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveTemplate(t *testing.T) {
	values := map[string]string{"sender": "Ana"}

	t.Run("missing row falls back with channels enabled", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMail{}, &fakePush{})

		got := uc.resolveTemplate(context.Background(), entity.EventKeyChatMessage, "From {{sender}}", "body", values)

		if got.Title != "From Ana" {
			t.Errorf("title = %q, want %q", got.Title, "From Ana")
		}
		if !got.InAppEnabled || !got.EmailEnabled {
			t.Errorf("fallback channels = %v/%v, want both enabled", got.InAppEnabled, got.EmailEnabled)
		}
	})

	t.Run("lookup error falls back instead of dropping", func(t *testing.T) {
		repo := &fakeRepo{
			getTemplateFn: func(context.Context, entity.EventKey) (*entity.Template, error) {
				return nil, errors.New("connection refused")
			},
		}
		uc := newTestUsecase(t, repo, &fakeMail{}, &fakePush{})

		got := uc.resolveTemplate(context.Background(), entity.EventKeyChatMessage, "From {{sender}}", "body", values)

		if got.Title != "From Ana" {
			t.Errorf("title = %q, want fallback render", got.Title)
		}
		if !got.InAppEnabled || !got.EmailEnabled {
			t.Error("fallback should enable every channel")
		}
	})

	t.Run("stored row wins and carries its flags", func(t *testing.T) {
		repo := &fakeRepo{
			getTemplateFn: func(context.Context, entity.EventKey) (*entity.Template, error) {
				return &entity.Template{
					TitleTemplate: "{{sender}} pinged you",
					BodyTemplate:  "custom body",
					InAppEnabled:  true,
					EmailEnabled:  false,
				}, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMail{}, &fakePush{})

		got := uc.resolveTemplate(context.Background(), entity.EventKeyChatMessage, "fallback", "fallback", values)

		if got.Title != "Ana pinged you" {
			t.Errorf("title = %q, want %q", got.Title, "Ana pinged you")
		}
		if got.Body != "custom body" {
			t.Errorf("body = %q, want %q", got.Body, "custom body")
		}
		if got.EmailEnabled {
			t.Error("stored row disabled email, resolved template should too")
		}
	})
}
