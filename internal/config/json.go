package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-friendly [Duration] type, so an operator can keep the whole
// deployment configuration in one file.
type StructuredJSONConfig struct {
	App struct {
		PasswordHashKey string   `json:"password_hash_key"`
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		BaseURL         string   `json:"base_url"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Google struct {
		ClientID      string `json:"client_id"`
		ClientSecret  string `json:"client_secret"`
		RedirectURL   string `json:"redirect_url"`
		AuthURL       string `json:"auth_url"`
		TokenURL      string `json:"token_url"`
		SheetsBaseURL string `json:"sheets_base_url"`
		Scopes        string `json:"scopes"`
	} `json:"google,omitempty"`

	Notify struct {
		Address string `json:"smtp_address"`
		From    string `json:"from"`
	} `json:"notify,omitempty"`

	Workers struct {
		RefreshInterval Duration `json:"refresh_interval"`
	} `json:"workers,omitempty"`

	Client struct {
		ServerURL      string   `json:"server_url"`
		FormID         string   `json:"form_id"`
		CachePath      string   `json:"cache_path"`
		RequestTimeout Duration `json:"request_timeout"`
		SuccessText    string   `json:"success_text"`
	} `json:"client,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordHashKey: jsonCfg.App.PasswordHashKey,
			TokenSignKey:    jsonCfg.App.TokenSignKey,
			TokenIssuer:     jsonCfg.App.TokenIssuer,
			TokenDuration:   time.Duration(jsonCfg.App.TokenDuration),
			BaseURL:         jsonCfg.App.BaseURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Google: Google{
			ClientID:      jsonCfg.Google.ClientID,
			ClientSecret:  jsonCfg.Google.ClientSecret,
			RedirectURL:   jsonCfg.Google.RedirectURL,
			AuthURL:       jsonCfg.Google.AuthURL,
			TokenURL:      jsonCfg.Google.TokenURL,
			SheetsBaseURL: jsonCfg.Google.SheetsBaseURL,
			Scopes:        jsonCfg.Google.Scopes,
		},
		Notify: Notify{
			Address: jsonCfg.Notify.Address,
			From:    jsonCfg.Notify.From,
		},
		Workers: Workers{
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
		},
		Client: Client{
			ServerURL:      jsonCfg.Client.ServerURL,
			FormID:         jsonCfg.Client.FormID,
			CachePath:      jsonCfg.Client.CachePath,
			RequestTimeout: time.Duration(jsonCfg.Client.RequestTimeout),
			SuccessText:    jsonCfg.Client.SuccessText,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
