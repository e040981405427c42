/*
 * Copyright 2019 The CovenantSQL Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package conf loads the YAML configuration of the entropy mixer.
package conf

import (
	"io/ioutil"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	validator "gopkg.in/go-playground/validator.v9"
	yaml "gopkg.in/yaml.v2"

	"github.com/CovenantSQL/randmix/crypto/hash"
	"github.com/CovenantSQL/randmix/crypto/strength"
	"github.com/CovenantSQL/randmix/utils/log"
)

var (
	// ErrUnknownHash indicates the configured hash algorithm can not be resolved.
	ErrUnknownHash = errors.New("unknown hash algorithm in config")
	// ErrInvalidStrength indicates the configured strength is not a defined level.
	ErrInvalidStrength = errors.New("invalid strength in config")
	// ErrInvalidLogLevel indicates the configured log level can not be parsed.
	ErrInvalidLogLevel = errors.New("invalid log level in config")
)

// MixerConfig selects the mixer.
type MixerConfig struct {
	// Hash is the hash algorithm name of the hash mixer, see hash.Algorithms.
	Hash string `yaml:"Hash" validate:"hashalgo"`
	// Strength is the requested mixer strength.
	Strength strength.Strength `yaml:"Strength" validate:"strength"`
}

// Config holds all the config read from yaml config file.
type Config struct {
	LogLevel string      `yaml:"LogLevel" validate:"omitempty,loglevel"`
	Mixer    MixerConfig `yaml:"Mixer"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hashalgo", func(fl validator.FieldLevel) bool {
		return hash.DefaultFactory().Has(fl.Field().String())
	})
	_ = v.RegisterValidation("strength", func(fl validator.FieldLevel) bool {
		return strength.Strength(fl.Field().Int()).IsValid()
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := log.ParseLevel(fl.Field().String())
		return err == nil
	})
	return v
}

var tagErrors = map[string]error{
	"hashalgo": ErrUnknownHash,
	"strength": ErrInvalidStrength,
	"loglevel": ErrInvalidLogLevel,
}

// DefaultConfig returns the config used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Mixer: MixerConfig{
			Hash:     hash.DefaultAlgorithm,
			Strength: strength.Low,
		},
	}
}

// ParseConfig parses configBytes over the defaults.
func ParseConfig(configBytes []byte) (config *Config, err error) {
	config = DefaultConfig()
	if err = yaml.Unmarshal(configBytes, config); err != nil {
		err = errors.Wrap(err, "unmarshal config failed")
		config = nil
		return
	}
	return
}

// LoadConfig loads config from configPath.
func LoadConfig(configPath string) (config *Config, err error) {
	var configBytes []byte
	if configBytes, err = ioutil.ReadFile(configPath); err != nil {
		log.WithError(err).WithField("path", configPath).Error("read config file failed")
		err = errors.Wrap(err, "read config file failed")
		return
	}
	if config, err = ParseConfig(configBytes); err != nil {
		log.WithError(err).WithField("path", configPath).Error("unmarshal config file failed")
		return
	}
	return
}

// Validate checks every field and reports all the problems at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, "validate config failed")
	}

	var result *multierror.Error
	for _, fe := range fieldErrs {
		cause, ok := tagErrors[fe.Tag()]
		if !ok {
			cause = errors.New(fe.Tag())
		}
		result = multierror.Append(result, errors.Wrapf(cause, "%s: %v", fe.Namespace(), fe.Value()))
	}
	return result.ErrorOrNil()
}
