package auth

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for registration and password reset metrics.
const (
	ResultSuccess   = "success"
	ResultDuplicate = "duplicate_email"
	ResultNotFound  = "not_found"
	ResultError     = "error"
)

// LoginAttempts counts login attempts by outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var LoginAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "credential_store_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	},
	[]string{"status"},
)

// Registrations counts registration attempts by result.
var Registrations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "credential_store_registrations_total",
		Help: "Total number of registration attempts by result",
	},
	[]string{"result"},
)

// PasswordResets counts password reset attempts by result.
var PasswordResets = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "credential_store_password_resets_total",
		Help: "Total number of password reset attempts by result",
	},
	[]string{"result"},
)

// SessionActive is 1 while a user is logged in.
var SessionActive = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "credential_store_session_active",
		Help: "Whether a session is currently active (1) or not (0)",
	},
)

// RegisterMetrics registers the auth metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(Registrations)
	reg.MustRegister(PasswordResets)
	reg.MustRegister(SessionActive)
}

// RecordLogin increments the login counter for status.
func RecordLogin(status LoginStatus) {
	LoginAttempts.WithLabelValues(status.String()).Inc()
}

func recordResult(vec *prometheus.CounterVec, result string) {
	vec.WithLabelValues(result).Inc()
}

func setSessionActive(active bool) {
	if active {
		SessionActive.Set(1)
		return
	}
	SessionActive.Set(0)
}
