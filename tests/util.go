package testutil

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
	"github.com/trezcool/elevate/core/subject"
	logsvc "github.com/trezcool/elevate/services/logger"
)

func NewConfig() *core.Config {
	return &core.Config{
		TestMode:         true,
		AppName:          "Elevate",
		Env:              "TEST",
		Build:            "test",
		FrontendBaseURL:  "http://localhost:5173",
		DefaultFromEmail: "Elevate <noreply@elevate.test>",
		AdminEmail:       "Admin <admin@elevate.test>",
		Server: core.ServerConfig{
			Host: "localhost",
			Addr: ":0",
		},
		Storage: core.StorageConfig{
			Bucket: "elevate",
			Region: "us-east-1",
		},
	}
}

// NewLogger returns a silent logger that never reports to rollbar.
func NewLogger() *logsvc.RollbarLogger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), NewConfig())
	logger.Enable(false)
	return logger
}

func CreateProfile(t *testing.T, repo profile.Repository, name string, age int, school, grade, theme string, joinedAt ...time.Time) profile.Profile {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(joinedAt) > 0 {
		tstamp = joinedAt[0].UTC()
	}
	p, err := repo.CreateProfile(context.Background(), profile.Profile{
		ID:        uuid.NewString(),
		Name:      name,
		Age:       age,
		School:    school,
		Grade:     grade,
		Theme:     theme,
		JoinedAt:  tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	return p
}

func CreateFile(t *testing.T, repo subject.Repository, grade, subj, filename string, createdAt ...time.Time) subject.File {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	id := uuid.NewString()
	f, err := repo.CreateFile(context.Background(), subject.File{
		ID:          id,
		Grade:       grade,
		Subject:     subj,
		Filename:    filename,
		ContentType: "application/pdf",
		Size:        42,
		Link:        "https://files.elevate.test/" + subject.ObjectKey(grade, id, filename),
		CreatedAt:   tstamp,
	})
	if err != nil {
		t.Fatalf("CreateFile() failed: %v", err)
	}
	return f
}
