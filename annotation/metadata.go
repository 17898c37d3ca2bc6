/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package annotation implements a reserved annotation namespace: typed
// accessors for the "org.ommx.v1.instance.*" keys a packaging client
// attaches to an Instance, plus an opaque passthrough for
// "org.ommx.user.*" keys. Metadata itself is just a view over a
// map[string]string; it never reaches into instance.Instance directly, so
// a caller decides where that map is actually stored (an OCI manifest's
// annotations block, a sidecar file, a database column).
package annotation

import (
	"strings"
	"time"

	"github.com/Jij-Inc/ommx-sub001"
)

const (
	keyTitle       = "org.ommx.v1.instance.title"
	keyCreated     = "org.ommx.v1.instance.created"
	keyAuthors     = "org.ommx.v1.instance.authors"
	keyDataset     = "org.ommx.v1.instance.dataset"
	keyLicense     = "org.ommx.v1.instance.license"
	keyConstraints = "org.ommx.v1.instance.constraints"
	keyVariables   = "org.ommx.v1.instance.variables"

	userPrefix = "org.ommx.user."
)

// Metadata is an immutable snapshot of an annotation map: every With*
// method returns a copy, matching the value semantics the rest of this
// module uses for small records.
type Metadata struct {
	raw map[string]string
}

// New returns an empty Metadata.
func New() Metadata {
	return Metadata{raw: map[string]string{}}
}

// FromMap wraps a copy of raw. Unrecognized keys outside both the
// "org.ommx.v1.instance." and "org.ommx.user." namespaces are kept
// verbatim and round-trip through ToMap, but have no typed accessor.
func FromMap(raw map[string]string) Metadata {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return Metadata{raw: out}
}

// ToMap returns a copy of the underlying annotation map.
func (m Metadata) ToMap() map[string]string {
	out := make(map[string]string, len(m.raw))
	for k, v := range m.raw {
		out[k] = v
	}
	return out
}

func (m Metadata) with(key, value string) Metadata {
	out := m.ToMap()
	out[key] = value
	return Metadata{raw: out}
}

func (m Metadata) without(key string) Metadata {
	out := m.ToMap()
	delete(out, key)
	return Metadata{raw: out}
}

// Title returns the "org.ommx.v1.instance.title" value, if set.
func (m Metadata) Title() (string, bool) {
	v, ok := m.raw[keyTitle]
	return v, ok
}

// WithTitle returns a copy of m with the title annotation set.
func (m Metadata) WithTitle(title string) Metadata {
	return m.with(keyTitle, title)
}

// Created returns the "org.ommx.v1.instance.created" value parsed as
// RFC 3339, if set. A present but unparsable value is reported via err
// rather than ok=false, so callers can distinguish "absent" from
// "malformed".
func (m Metadata) Created() (t time.Time, ok bool, err error) {
	v, present := m.raw[keyCreated]
	if !present {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, true, &ommx.DecodeError{Path: keyCreated, Reason: "not a valid RFC 3339 timestamp", Err: err}
	}
	return t, true, nil
}

// WithCreated returns a copy of m with the created annotation set to t,
// rendered in UTC RFC 3339.
func (m Metadata) WithCreated(t time.Time) Metadata {
	return m.with(keyCreated, t.UTC().Format(time.RFC3339))
}

// Authors returns the "org.ommx.v1.instance.authors" value split on
// commas and trimmed, or nil if unset.
func (m Metadata) Authors() []string {
	v, ok := m.raw[keyAuthors]
	if !ok || v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// WithAuthors returns a copy of m with the authors annotation set to the
// comma-joined list of authors.
func (m Metadata) WithAuthors(authors ...string) Metadata {
	return m.with(keyAuthors, strings.Join(authors, ", "))
}

// Dataset returns the "org.ommx.v1.instance.dataset" value, if set.
func (m Metadata) Dataset() (string, bool) {
	v, ok := m.raw[keyDataset]
	return v, ok
}

// WithDataset returns a copy of m with the dataset annotation set.
func (m Metadata) WithDataset(dataset string) Metadata {
	return m.with(keyDataset, dataset)
}

// License returns the "org.ommx.v1.instance.license" value, if set.
func (m Metadata) License() (string, bool) {
	v, ok := m.raw[keyLicense]
	return v, ok
}

// WithLicense returns a copy of m with the license annotation set.
func (m Metadata) WithLicense(license string) Metadata {
	return m.with(keyLicense, license)
}

// Constraints returns the "org.ommx.v1.instance.constraints" value
// (a free-form description of the constraint set), if set.
func (m Metadata) Constraints() (string, bool) {
	v, ok := m.raw[keyConstraints]
	return v, ok
}

// WithConstraints returns a copy of m with the constraints annotation set.
func (m Metadata) WithConstraints(description string) Metadata {
	return m.with(keyConstraints, description)
}

// Variables returns the "org.ommx.v1.instance.variables" value (a
// free-form description of the decision variables), if set.
func (m Metadata) Variables() (string, bool) {
	v, ok := m.raw[keyVariables]
	return v, ok
}

// WithVariables returns a copy of m with the variables annotation set.
func (m Metadata) WithVariables(description string) Metadata {
	return m.with(keyVariables, description)
}

// UserAnnotations returns every "org.ommx.user.*" key with its prefix
// stripped, as opaque strings the core never interprets.
func (m Metadata) UserAnnotations() map[string]string {
	out := map[string]string{}
	for k, v := range m.raw {
		if suffix, ok := strings.CutPrefix(k, userPrefix); ok {
			out[suffix] = v
		}
	}
	return out
}

// WithUserAnnotation returns a copy of m with "org.ommx.user."+key set to
// value. key must not itself contain the "org.ommx." prefix; passing one
// that does is almost certainly a caller bug (double-prefixing) and fails
// with InvalidAnnotationKeyError.
func (m Metadata) WithUserAnnotation(key, value string) (Metadata, error) {
	if strings.HasPrefix(key, "org.ommx.") {
		return Metadata{}, &InvalidAnnotationKeyError{Key: key}
	}
	return m.with(userPrefix+key, value), nil
}

// WithoutUserAnnotation returns a copy of m with "org.ommx.user."+key
// removed, if present.
func (m Metadata) WithoutUserAnnotation(key string) Metadata {
	return m.without(userPrefix + key)
}

// InvalidAnnotationKeyError is returned by WithUserAnnotation when key
// already carries the reserved "org.ommx." prefix.
type InvalidAnnotationKeyError struct{ Key string }

func (e *InvalidAnnotationKeyError) Error() string {
	return "annotation: key \"" + e.Key + "\" must not start with the reserved \"org.ommx.\" prefix"
}
