package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	METRIC_GROUPS_SUBMITTED    = "groups_submitted"
	METRIC_GROUPS_CONFIRMED    = "groups_confirmed"
	METRIC_GROUPS_REJECTED     = "groups_rejected"
	METRIC_NOTE_DECODE_FAILURE = "note_decode_failures"
)

var (
	counters map[string]prometheus.Counter
)

func Init() {

	// Create metric spaces
	counters = make(map[string]prometheus.Counter)

	register := func(name, help string) {
		counter := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "capi",
			Subsystem: "core",
			Name:      name,
			Help:      help,
		})
		prometheus.MustRegister(counter)
		counters[name] = counter
	}

	register(METRIC_GROUPS_SUBMITTED, "Counts the atomic groups broadcast to the network")
	register(METRIC_GROUPS_CONFIRMED, "Counts the atomic groups confirmed by the network")
	register(METRIC_GROUPS_REJECTED, "Counts the atomic groups rejected by the network")
	register(METRIC_NOTE_DECODE_FAILURE, "Counts the dao notes that failed to decode or verify")
}

func GetCounter(name string) prometheus.Counter {
	return counters[name]
}

func inc(name string) {
	// Metrics are optional, the library works without Init.
	if counter, ok := counters[name]; ok {
		counter.Inc()
	}
}

func IncGroupsSubmitted() {
	inc(METRIC_GROUPS_SUBMITTED)
}

func IncGroupsConfirmed() {
	inc(METRIC_GROUPS_CONFIRMED)
}

func IncGroupsRejected() {
	inc(METRIC_GROUPS_REJECTED)
}

func IncNoteDecodeFailure() {
	inc(METRIC_NOTE_DECODE_FAILURE)
}
