package types

// Mode represents the reporting mode passed to the monitoring script
type Mode string

const (
	// ModeActionable reports only findings that require operator action
	ModeActionable Mode = "actionable"

	// ModeVerbose reports every command result in full
	ModeVerbose Mode = "verbose"
)

// Valid reports whether the mode is one of the recognized values
func (m Mode) Valid() bool {
	return m == ModeActionable || m == ModeVerbose
}

// VerboseFlag returns the script argument for the mode
func (m Mode) VerboseFlag() string {
	if m == ModeVerbose {
		return "--verbose=true"
	}
	return "--verbose=false"
}

// Category represents a group of monitoring commands in the master manifest
type Category struct {
	// ID is the single uppercase letter identifying the group (A-T)
	ID string `json:"id"`

	// Name is the human-readable category name
	Name string `json:"name"`

	// CommandCount is the number of manifest entries tagged with this ID
	CommandCount int `json:"commandCount"`
}

// ReportFile describes a generated HTML report on disk
type ReportFile struct {
	// Name is the report file name (daily_*.html)
	Name string `json:"name"`

	// Size is the file size in bytes
	Size int64 `json:"size"`

	// Created is the file modification timestamp in RFC3339 format
	Created string `json:"created"`

	// URL is the path under which the report is served
	URL string `json:"url"`
}

// RunRequest is a validated request to execute the monitoring script
type RunRequest struct {
	// Groups is the set of selected category identifiers
	Groups []string `json:"groups"`

	// Mode selects actionable or verbose reporting; defaults to actionable
	Mode string `json:"mode"`
}

// RunResult is the outcome of a single monitoring script execution
type RunResult struct {
	// Success indicates whether the script completed with exit code zero
	Success bool `json:"success"`

	// Message is a human-readable description of the outcome
	Message string `json:"message"`

	// ReportFile is the name of the report produced by the run, if any
	ReportFile string `json:"reportFile,omitempty"`

	// ReportURL is the path under which the report is served, if any
	ReportURL string `json:"reportUrl,omitempty"`

	// Output is a truncated snippet of the captured script output
	Output string `json:"output,omitempty"`
}

// CategoryNames maps category identifiers to their fixed human-readable
// names. This is static domain data defined by the monitoring script.
var CategoryNames = map[string]string{
	"A": "Cluster-Wide Health & Platform",
	"B": "Node Health (Master & Worker)",
	"C": "Control Plane",
	"D": "Certificates",
	"E": "Projects/Namespaces & Quotas",
	"F": "Application Health",
	"G": "Storage (PV/PVC/SC)",
	"H": "Networking",
	"I": "Logging & Events",
	"J": "Performance & Resource Metrics",
	"K": "Service Mesh (Istio & Kiali)",
	"L": "Data Grid (Infinispan/Hazelcast)",
	"M": "3Scale API Management",
	"N": "Kafka (Strimzi/Red Hat)",
	"O": "Storage Platform (ODF/Ceph)",
	"P": "MQ / Streaming",
	"Q": "HashiCorp Vault",
	"R": "Observability Stack",
	"S": "Discovery Loops",
	"T": "RHACS / ACS Presence",
}

// CategoryName returns the fixed name for a category identifier, falling
// back to a generic name for identifiers without a table entry
func CategoryName(id string) string {
	if name, ok := CategoryNames[id]; ok {
		return name
	}
	return "Category " + id
}
