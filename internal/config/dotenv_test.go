package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestGodotenvQuoting(t *testing.T) {
	content := `CORS_ORIGINS='http://a.example, "http://b.example"'`
	tmpfile, err := os.CreateTemp("", ".env.test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(tmpfile.Name())
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `http://a.example, "http://b.example"`
	if env["CORS_ORIGINS"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["CORS_ORIGINS"])
	}
}

func TestLoad_ReadsWorkingDirectoryEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_PATH", dir)
	t.Setenv("LOGS_FOLDER", filepath.Join(dir, "logs"))
	t.Cleanup(func() { os.Unsetenv("P_UNKNOWN") })

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("P_UNKNOWN=0.25\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.Model().PUnknown; got != 0.25 {
		t.Errorf("expected p_unknown from .env (0.25), got %v", got)
	}
}
