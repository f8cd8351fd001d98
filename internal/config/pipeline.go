// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
)

type Pipeline struct {
	Stream *StreamPipeline
}

func (cfg Pipeline) Validate() error {
	if err := cfg.Stream.Validate(); err != nil {
		return fmt.Errorf("stream: %v", err)
	}
	return nil
}

type StreamPipeline struct {
	InMem *InMemPipeline
	Kafka *KafkaPipeline
}

func (cfg *StreamPipeline) Validate() error {
	if cfg == nil {
		return nil
	}
	if cfg.InMem != nil && cfg.InMem.URL == "" {
		return errors.New("inmem: missing stream url")
	}
	if k := cfg.Kafka; k != nil {
		if len(k.Brokers) == 0 || k.Topic == "" {
			return errors.New("kafka: missing brokers or topic")
		}
	}
	return nil
}

type InMemPipeline struct {
	URL string
}

type KafkaPipeline struct {
	Brokers []string
	Group   string
	Topic   string
}
