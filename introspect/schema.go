package introspect

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// MessageSchema is a compiled, immutable message definition: the root type,
// every reachable message definition keyed by canonical type string, and a
// StringTree compiled once so Deserialize/Visit never re-walk field names.
type MessageSchema struct {
	RootType       ROSType
	Messages       map[string]*ROSMessage
	Tree           *StringTreeNode
	DefinitionText string
}

// Registry is the schema registry of [MODULE] C. The zero value is not
// usable; construct with NewRegistry. A Registry is safe for concurrent use:
// RegisterMessageDefinition and RegisterRenameRule (and so LoadRenameRules)
// take the write lock; Deserialize, Visit and ApplyNameTransform take the
// read lock and may run in parallel against distinct FlatMessage sinks.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*MessageSchema
	rules   map[string][]RenameRule
	logger  *logrus.Logger
}

// NewRegistry builds an empty Registry. logger may be nil, in which case
// logrus.StandardLogger() is used.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Registry{
		schemas: make(map[string]*MessageSchema),
		rules:   make(map[string][]RenameRule),
		logger:  logger,
	}
}

// RegisterMessageDefinition parses definitionText against rootType and
// installs it under topicID. Re-registering the same topic with
// byte-identical definition text is a no-op; a different definition replaces
// the schema (and any rename rules registered against the old one remain,
// matching spec.md's silence on rule invalidation -- callers that change a
// topic's type are expected to re-register rules too).
func (r *Registry) RegisterMessageDefinition(topicID string, rootType ROSType, definitionText string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.schemas[topicID]; ok && existing.DefinitionText == definitionText {
		return nil
	}

	messages, err := parseDefinition(rootType, definitionText)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"topic": topicID,
			"type":  rootType.String(),
		}).Warn("message definition registration failed: ", err)
		return err
	}

	tree, err := buildStringTree(rootType, messages, make(map[string]bool))
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"topic": topicID,
			"type":  rootType.String(),
		}).Warn("message definition registration failed: ", err)
		return err
	}

	schema := &MessageSchema{
		RootType:       rootType,
		Messages:       messages,
		Tree:           tree,
		DefinitionText: definitionText,
	}
	r.schemas[topicID] = schema
	r.registerImplicitRules(topicID, messages[rootType.String()], "")

	r.logger.WithFields(logrus.Fields{
		"topic":  topicID,
		"type":   rootType.String(),
		"fields": len(messages[rootType.String()].Fields),
	}).Debug("registered message definition")

	return nil
}

// lookup returns the schema registered for topicID under the read lock.
func (r *Registry) lookup(topicID string) (*MessageSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schema, ok := r.schemas[topicID]
	if !ok {
		return nil, &SchemaNotFoundError{TopicID: topicID}
	}
	return schema, nil
}
