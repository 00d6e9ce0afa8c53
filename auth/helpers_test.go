package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-adwords/core"
)

type fakeDirectory struct {
	defaultEnv core.Environment
	scopes     map[core.Environment]string
	legacy     map[string]string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		defaultEnv: core.EnvironmentProduction,
		scopes: map[core.Environment]string{
			core.EnvironmentProduction: "scope-production",
			core.EnvironmentSandbox:    "scope-sandbox",
		},
		legacy: map[string]string{
			core.LegacyLoginKeyServer:      "https://login.example.com/ClientLogin",
			core.LegacyLoginKeyServiceName: "adwords",
		},
	}
}

func (d *fakeDirectory) DefaultVersion() string { return "v201809" }

func (d *fakeDirectory) DefaultEnvironment() core.Environment { return d.defaultEnv }

func (d *fakeDirectory) Versions() []string { return []string{"v201809"} }

func (d *fakeDirectory) Services(string) ([]string, error) { return nil, nil }

func (d *fakeDirectory) Endpoint(version string, service string, env core.Environment) (string, error) {
	return fmt.Sprintf("https://example.com/%s/%s", version, service), nil
}

func (d *fakeDirectory) EnvironmentConfig(env core.Environment, key string) (string, bool) {
	if key != core.EnvKeyOAuthScope {
		return "", false
	}
	scope, ok := d.scopes[env]
	return scope, ok
}

func (d *fakeDirectory) LegacyLoginConfig(key string) (string, bool) {
	value, ok := d.legacy[key]
	return value, ok
}

func (d *fakeDirectory) HeaderNamespace(version string) string {
	return "https://example.com/api/cm/" + version
}

func (d *fakeDirectory) ServiceNamespace(version string, _ string) (string, error) {
	return "https://example.com/api/cm/" + version, nil
}

var _ core.ServiceDirectory = (*fakeDirectory)(nil)

type warnCall struct {
	msg  string
	args []any
}

type capturingLogger struct {
	warns []warnCall
}

func (l *capturingLogger) Trace(string, ...any) {}
func (l *capturingLogger) Debug(string, ...any) {}
func (l *capturingLogger) Info(string, ...any)  {}
func (l *capturingLogger) Error(string, ...any) {}
func (l *capturingLogger) Fatal(string, ...any) {}

func (l *capturingLogger) Warn(msg string, args ...any) {
	l.warns = append(l.warns, warnCall{msg: msg, args: append([]any(nil), args...)})
}

func (l *capturingLogger) WithContext(context.Context) glog.Logger {
	return l
}

var _ glog.Logger = (*capturingLogger)(nil)

func generateTestRSAPrivateKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	return string(pem.EncodeToMemory(block))
}
