package store

import (
	"context"
	"fmt"
	"os"
	"sort"

	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"

	"gopkg.in/yaml.v3"
)

// YAMLSource serves users and transactions from a single YAML document:
//
//	users:
//	  - id: "42"
//	    transactions:
//	      - id: t1
//	        date: 2024-01-15
//	        amount: 20.50
//	        category: [Food, Lunch]
type YAMLSource struct {
	users map[string][]models.Transaction
}

type yamlDocument struct {
	Users []yamlUser `yaml:"users"`
}

type yamlUser struct {
	ID           scalarString      `yaml:"id"`
	Transactions []yamlTransaction `yaml:"transactions"`
}

type yamlTransaction struct {
	ID          scalarString `yaml:"id"`
	Date        scalarString `yaml:"date"`
	Amount      scalarString `yaml:"amount"`
	Category    categoryList `yaml:"category"`
	Description scalarString `yaml:"description"`
}

// scalarString keeps the literal text of any scalar, so amounts like 20.50 and
// dates like 2024-01-15 survive untouched.
type scalarString string

func (s *scalarString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", node.Line)
	}
	*s = scalarString(node.Value)
	return nil
}

// categoryList accepts a single label or a list of labels.
type categoryList []string

func (c *categoryList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*c = categoryList{node.Value}
		return nil
	case yaml.SequenceNode:
		var labels []string
		if err := node.Decode(&labels); err != nil {
			return err
		}
		*c = labels
		return nil
	}
	return fmt.Errorf("line %d: category must be a string or a list", node.Line)
}

// LoadYAMLSource parses the YAML document at path.
func LoadYAMLSource(path string, logger logging.Logger) (*YAMLSource, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading transactions file: %w", err)
	}

	src, err := ParseYAMLSource(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing transactions file %s: %w", path, err)
	}
	logger.Debug("Loaded YAML transactions",
		logging.Field{Key: logging.FieldSourcePath, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(src.users)})
	return src, nil
}

// ParseYAMLSource builds a YAMLSource from raw YAML.
func ParseYAMLSource(data []byte) (*YAMLSource, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	src := &YAMLSource{users: make(map[string][]models.Transaction, len(doc.Users))}
	for _, u := range doc.Users {
		if u.ID == "" {
			return nil, fmt.Errorf("user without id")
		}
		txs := make([]models.Transaction, 0, len(u.Transactions))
		for _, t := range u.Transactions {
			txs = append(txs, models.Transaction{
				ID:          string(t.ID),
				Date:        string(t.Date),
				Amount:      string(t.Amount),
				Category:    models.PrimaryCategory(t.Category...),
				Description: string(t.Description),
			})
		}
		id := string(u.ID)
		src.users[id] = append(src.users[id], txs...)
	}
	return src, nil
}

// Transactions implements TransactionSource.
func (s *YAMLSource) Transactions(_ context.Context, userID string) ([]models.Transaction, error) {
	txs, ok := s.users[userID]
	if !ok {
		return nil, &UserNotFoundError{UserID: userID}
	}
	return cloneTransactions(txs), nil
}

// Users implements TransactionSource.
func (s *YAMLSource) Users(_ context.Context) ([]string, error) {
	users := make([]string, 0, len(s.users))
	for id := range s.users {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}
