// Package metrics defines and registers all custom Prometheus metrics for the
// todo API. It is the single source of truth for metric names, labels, and
// help strings.
//
// HTTP-level metrics (request counts, durations) come from the echoprometheus
// middleware registered in the router; the collectors here cover domain
// events only.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todoapi"

// UsersRegisteredTotal counts successful account registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts requests turned away by the session guard.
// Label:
//   - reason: "missing" (no bearer token) or "invalid" (malformed/expired/unknown user)
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware, labelled by reason.",
	},
	[]string{"reason"},
)

// TodosCreatedTotal counts newly created todos.
var TodosCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todos created.",
	},
)

// TodoMutationsTotal counts successful todo mutations.
// Label:
//   - op: "update" or "delete"
var TodoMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todo_mutations_total",
		Help:      "Total number of successful todo mutations, labelled by operation.",
	},
	[]string{"op"},
)
