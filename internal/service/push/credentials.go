package push

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ServiceAccount — проверенные учётные данные сервисного аккаунта Firebase.
type ServiceAccount struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string

	raw []byte
}

// LoadServiceAccount разбирает JSON сервисного аккаунта.
// Экранированные переводы строк в private_key ("\\n") заменяются настоящими.
func LoadServiceAccount(raw string) (ServiceAccount, error) {
	if strings.TrimSpace(raw) == "" {
		return ServiceAccount{}, errors.New("service account json is empty")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return ServiceAccount{}, fmt.Errorf("parse service account json: %w", err)
	}

	account := ServiceAccount{
		ProjectID:   stringField(fields, "project_id"),
		ClientEmail: stringField(fields, "client_email"),
		PrivateKey:  strings.ReplaceAll(stringField(fields, "private_key"), `\n`, "\n"),
	}

	var missing []string
	if account.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if account.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if account.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return ServiceAccount{}, fmt.Errorf("service account json is missing %s", strings.Join(missing, ", "))
	}

	fields["private_key"] = account.PrivateKey
	normalized, err := json.Marshal(fields)
	if err != nil {
		return ServiceAccount{}, fmt.Errorf("encode service account json: %w", err)
	}
	account.raw = normalized

	return account, nil
}

// CredentialsJSON возвращает нормализованный JSON для клиента Firebase.
func (a ServiceAccount) CredentialsJSON() []byte {
	return a.raw
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return strings.TrimSpace(value)
}
