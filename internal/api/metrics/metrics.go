// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// SignInsTotal counts sign-in attempts.
// Labels:
//   - method: "credentials" or "oauth"
//   - result: "success" or "failure"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// RegistrationsTotal counts created accounts.
// Label:
//   - role: the role the account was registered with
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// PolicyDecisionsTotal counts access policy evaluations on page routes.
// Label:
//   - outcome: "allow", "signin_redirect", "dashboard_redirect", "setup_redirect"
var PolicyDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_decisions_total",
		Help:      "Total number of access policy decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ProfileUpsertsTotal counts successful profile submissions.
// Label:
//   - role: "CLIENT" or "EXPERT"
var ProfileUpsertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_upserts_total",
		Help:      "Total number of profile records created or replaced, by role.",
	},
	[]string{"role"},
)

// RoleChangesTotal counts admin role reassignments.
// Label:
//   - new_role: the role assigned
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of admin role reassignments, by new role.",
	},
	[]string{"new_role"},
)
