package kafka_config

import (
	"testing"
	"time"
)

func TestConfig_DisabledSkipsValidation(t *testing.T) {
	cfg := &Config{ProducerCompression: "bogus"}
	if cfg.Enabled() {
		t.Fatal("config without brokers must be disabled")
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want none", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Brokers:              []string{"localhost:9092"},
		Topic:                DefaultTopic,
		ProducerMaxAttempts:  3,
		ProducerBatchTimeout: time.Millisecond,
		ProducerRequireAcks:  -1,
		ProducerCompression:  "snappy",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr int
	}{
		{"valid", func(*Config) {}, 0},
		{"empty broker", func(c *Config) { c.Brokers = []string{"a:1", ""} }, 1},
		{"no topic", func(c *Config) { c.Topic = "" }, 1},
		{"bad compression", func(c *Config) { c.ProducerCompression = "brotli" }, 1},
		{"bad acks", func(c *Config) { c.ProducerRequireAcks = 2 }, 1},
		{"two problems", func(c *Config) { c.ProducerMaxAttempts = 0; c.ProducerBatchTimeout = 0 }, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Brokers = append([]string(nil), valid.Brokers...)
			tt.mutate(&cfg)
			if got := len(cfg.Validate()); got != tt.wantErr {
				t.Errorf("Validate() returned %d errors, want %d: %v", got, tt.wantErr, cfg.Validate())
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a:1 , b:2")
	if len(got) != 2 || got[0] != "a:1" || got[1] != "b:2" {
		t.Errorf("splitList() = %v", got)
	}
	if splitList("  ") != nil {
		t.Error("blank list must be nil")
	}
}
