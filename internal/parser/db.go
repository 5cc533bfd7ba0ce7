package parser

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"srx-config-model/internal/model"
)

// Document types stored per device in the management database.
const (
	docPolicies = "policies"
	docRoutes   = "routes"
	docZones    = "zones"
)

// MariaDBSource loads configuration exports that a management system has
// archived in MariaDB, as an alternative to reading export files. One row
// per document: device_export(hostname, doc_type, content).
type MariaDBSource struct {
	db *sql.DB
}

func NewMariaDBSource(dsn string) (*MariaDBSource, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &MariaDBSource{db: db}, nil
}

func (s *MariaDBSource) Close() {
	s.db.Close()
}

// LoadFirewall fetches the three stored exports for a device and builds its
// model. All three documents must be present.
func (s *MariaDBSource) LoadFirewall(hostname string) (*model.Firewall, error) {
	rows, err := s.db.Query("SELECT doc_type, content FROM device_export WHERE hostname = ?", hostname)
	if err != nil {
		return nil, fmt.Errorf("querying exports for %s: %w", hostname, err)
	}
	defer rows.Close()

	docs := make(map[string]string)
	for rows.Next() {
		var docType, content string
		if err := rows.Scan(&docType, &content); err != nil {
			return nil, fmt.Errorf("scanning export row for %s: %w", hostname, err)
		}
		docs[docType] = content
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading exports for %s: %w", hostname, err)
	}

	for _, docType := range []string{docPolicies, docRoutes, docZones} {
		if _, ok := docs[docType]; !ok {
			return nil, fmt.Errorf("device %s has no stored %s export", hostname, docType)
		}
	}

	fw, err := ParseFirewall(
		strings.NewReader(docs[docPolicies]),
		strings.NewReader(docs[docRoutes]),
		strings.NewReader(docs[docZones]),
	)
	if err != nil {
		return nil, fmt.Errorf("device %s: %w", hostname, err)
	}
	return fw, nil
}
