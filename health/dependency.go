package health

import (
	"fmt"
	"strings"
)

// Importance classifies how much the service relies on a dependency.
type Importance string

const (
	// ImportancePrimary means the service cannot function without the
	// dependency, e.g. its primary data store.
	ImportancePrimary Importance = "PRIMARY"
	// ImportanceSecondary means the service misbehaves without it but not
	// every business function is affected.
	ImportanceSecondary Importance = "SECONDARY"
	// ImportanceManageable means the service degrades gracefully or can
	// cope for some time without it.
	ImportanceManageable Importance = "MANAGEABLE"
)

// Importances lists every valid Importance.
var Importances = []Importance{
	ImportancePrimary,
	ImportanceSecondary,
	ImportanceManageable,
}

// Kind classifies what sort of resource a dependency is.
type Kind string

const (
	KindAPI            Kind = "API"
	KindDatabase       Kind = "DATABASE"
	KindCache          Kind = "CACHE"
	KindStorage        Kind = "STORAGE"
	KindConfiguration  Kind = "CONFIGURATION"
	KindWorker         Kind = "WORKER"
	KindFTP            Kind = "FTP"
	KindMessageQueue   Kind = "MESSAGE_QUEUE"
	KindMessageChannel Kind = "MESSAGE_CHANNEL"
	KindStream         Kind = "STREAM"
	KindHTTPResource   Kind = "HTTP_RESOURCE"
	KindResource       Kind = "RESOURCE"
)

// Kinds lists every valid Kind.
var Kinds = []Kind{
	KindAPI,
	KindDatabase,
	KindCache,
	KindStorage,
	KindConfiguration,
	KindWorker,
	KindFTP,
	KindMessageQueue,
	KindMessageChannel,
	KindStream,
	KindHTTPResource,
	KindResource,
}

// ParseImportance parses an importance name, ignoring case.
func ParseImportance(s string) (Importance, error) {
	v := Importance(strings.ToUpper(strings.TrimSpace(s)))
	for _, candidate := range Importances {
		if v == candidate {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown importance %q", s)
}

// ParseKind parses a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	v := Kind(strings.ToUpper(strings.TrimSpace(s)))
	for _, candidate := range Kinds {
		if v == candidate {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Dependency is a resource the service relies on. Its identity is Name.
type Dependency struct {
	Importance Importance `json:"importance" yaml:"importance"`
	Kind       Kind       `json:"type" yaml:"type"`
	Name       string     `json:"name" yaml:"name"`
}

func (d Dependency) String() string {
	return fmt.Sprintf("%s (%s, %s)", d.Name, d.Kind, d.Importance)
}
