package database

import (
	"testing"

	"quiz_exam_backend/internal/config"
)

func TestShouldMigrate(t *testing.T) {
	cases := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug mode migrates by default", "debug", false, true},
		{"release mode skips by default", "release", false, false},
		{"release mode with -migrate", "release", true, true},
		{"debug mode with -migrate", "debug", true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{ForceMigrate: tc.force}
			cfg.Server.Mode = tc.mode
			if got := shouldMigrate(cfg); got != tc.want {
				t.Fatalf("shouldMigrate = %v, want %v", got, tc.want)
			}
		})
	}
}
