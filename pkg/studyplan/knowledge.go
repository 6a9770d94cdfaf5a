// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package studyplan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMarker is the topic-line marker used by the bundled knowledge base.
const DefaultMarker = "KA"

// Capture group names used for the parts of a topic line.
const (
	codeGroup = "code"
	restGroup = "rest"
)

// Parser scans knowledge-base text for topic lines of the form
//
//	<marker> <code> - <title>[: <body>]
//
// Any other line is prose and is skipped.
type Parser struct {
	marker  string
	pattern *regexp.Regexp
	code    int
	rest    int
}

// NewParser builds a parser for the given marker. The marker is a regular
// expression fragment, so dialects such as `KA|TOPIC` or `(KA|TOPIC)` are
// accepted. Groups inside the marker may not be named code or rest.
func NewParser(marker string) (*Parser, error) {
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMarker
	}
	markerRe, err := regexp.Compile(marker)
	if err != nil {
		return nil, fmt.Errorf("invalid topic marker %q: %w", marker, err)
	}
	for _, name := range markerRe.SubexpNames() {
		if name == codeGroup || name == restGroup {
			return nil, fmt.Errorf("invalid topic marker %q: group name %q is reserved", marker, name)
		}
	}

	pattern, err := regexp.Compile(`^(?:` + marker + `)\s+(?P<` + codeGroup + `>\d+)\s+-\s+(?P<` + restGroup + `>.*)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid topic marker %q: %w", marker, err)
	}
	return &Parser{
		marker:  marker,
		pattern: pattern,
		code:    pattern.SubexpIndex(codeGroup),
		rest:    pattern.SubexpIndex(restGroup),
	}, nil
}

var defaultParser = func() *Parser {
	p, err := NewParser(DefaultMarker)
	if err != nil {
		panic(err)
	}
	return p
}()

// ParseKnowledgeBase parses text with the default marker.
func ParseKnowledgeBase(text string) []Topic {
	return defaultParser.Parse(text)
}

// Marker returns the marker pattern the parser was built with.
func (p *Parser) Marker() string {
	return p.marker
}

// Parse returns the topics of text in document order.
func (p *Parser) Parse(text string) []Topic {
	var topics []Topic
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		topic, ok := p.parseLine(line)
		if !ok {
			continue
		}
		topics = append(topics, topic)
	}
	return topics
}

func (p *Parser) parseLine(line string) (Topic, bool) {
	m := p.pattern.FindStringSubmatch(line)
	if m == nil {
		return Topic{}, false
	}
	code, err := strconv.Atoi(m[p.code])
	if err != nil {
		// out of int range
		return Topic{}, false
	}
	title := m[p.rest]
	if idx := strings.Index(title, ":"); idx >= 0 {
		title = title[:idx]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Topic{}, false
	}
	return Topic{Code: code, Title: title, RawLine: line}, true
}
