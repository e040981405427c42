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

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/randmix/conf"
	"github.com/CovenantSQL/randmix/crypto/hash"
	"github.com/CovenantSQL/randmix/crypto/strength"
	"github.com/CovenantSQL/randmix/random/mixer"
	"github.com/CovenantSQL/randmix/utils/log"
	"github.com/CovenantSQL/randmix/utils/timer"
)

var (
	version = "unknown"

	configFile  string
	hashName    string
	strengthStr string
	logLevel    string
	listOnly    bool

	partA string
	partB string
	hexA  string
	hexB  string
	fileA string
	fileB string
)

func init() {
	log.SetLevel(log.ErrorLevel)

	flag.StringVar(&configFile, "config", "", "config file path")
	flag.StringVar(&hashName, "hash", "", "hash algorithm of the hash mixer, overrides config")
	flag.StringVar(&strengthStr, "strength", "", "requested mixer strength, overrides config")
	flag.StringVar(&logLevel, "log-level", "", "log level, overrides config")
	flag.BoolVar(&listOnly, "list", false, "list hash algorithms and mixers then exit")
	flag.StringVar(&partA, "a", "", "first part as a string")
	flag.StringVar(&partB, "b", "", "second part as a string")
	flag.StringVar(&hexA, "hexa", "", "first part as a hex string")
	flag.StringVar(&hexB, "hexb", "", "second part as a hex string")
	flag.StringVar(&fileA, "filea", "", "first part read from a file")
	flag.StringVar(&fileB, "fileb", "", "second part read from a file")
}

func main() {
	flag.Parse()
	log.Infof("cql-mixer build: %s", version)

	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Error("load config failed")
		os.Exit(1)
	}
	log.SetStringLevel(cfg.LogLevel, log.InfoLevel)

	if listOnly {
		list(os.Stdout, cfg)
		return
	}

	tm := timer.NewTimer()
	a, err := readPart(partA, hexA, fileA)
	if err != nil {
		log.WithError(err).Error("read first part failed")
		os.Exit(1)
	}
	b, err := readPart(partB, hexB, fileB)
	if err != nil {
		log.WithError(err).Error("read second part failed")
		os.Exit(1)
	}

	tm.Add("read")

	out, err := run(cfg, a, b)
	if err != nil {
		log.WithError(err).Error("mix failed")
		os.Exit(1)
	}
	tm.Add("mix")
	log.WithFields(tm.ToLogFields()).Debug("parts mixed")
	fmt.Println(hex.EncodeToString(out))
}

// loadConfig reads the config file if any and applies the flag overrides.
func loadConfig() (cfg *conf.Config, err error) {
	if configFile != "" {
		if cfg, err = conf.LoadConfig(configFile); err != nil {
			return
		}
	} else {
		cfg = conf.DefaultConfig()
	}

	if hashName != "" {
		cfg.Mixer.Hash = hashName
	}
	if strengthStr != "" {
		if cfg.Mixer.Strength, err = strength.ParseStrength(strengthStr); err != nil {
			return
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	err = cfg.Validate()
	return
}

// readPart returns the first non empty source among str, hexStr and file.
func readPart(str, hexStr, file string) (part []byte, err error) {
	switch {
	case file != "":
		if part, err = ioutil.ReadFile(file); err != nil {
			err = errors.Wrapf(err, "read %s failed", file)
		}
	case hexStr != "":
		if part, err = hex.DecodeString(hexStr); err != nil {
			err = errors.Wrap(err, "decode hex failed")
		}
	default:
		part = []byte(str)
	}
	return
}

func run(cfg *conf.Config, a, b []byte) (out []byte, err error) {
	var m mixer.Mixer
	if m, err = mixer.NewFactory(cfg.Mixer.Hash).Get(cfg.Mixer.Strength); err != nil {
		return
	}

	log.WithFields(log.Fields{
		"hash":     cfg.Mixer.Hash,
		"strength": m.Strength().String(),
		"lenA":     len(a),
		"lenB":     len(b),
	}).Debug("mixing parts")

	return m.Mix(a, b)
}

func list(w io.Writer, cfg *conf.Config) {
	fmt.Fprintln(w, "hash algorithms:")
	for _, name := range hash.Algorithms() {
		h, err := hash.GetHash(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %-12s %3d bytes\n", name, h.Size())
	}
	fmt.Fprintln(w, "mixers:")
	for _, d := range mixer.NewFactory(cfg.Mixer.Hash).Mixers() {
		fmt.Fprintf(w, "  %-12s %s\n", d.Name, d.Strength)
	}
}
