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

package polynomial

import (
	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/internal/wire"
)

// ToBytes encodes l as: repeated {id, coeff} terms (field 1, ascending id
// order for determinism) followed by the constant (field 2).
func (l Linear) ToBytes() []byte {
	w := wire.NewWriter()
	for _, id := range l.RequiredIDs() {
		term := wire.NewWriter()
		term.VarintAlways(1, uint64(id))
		term.DoubleAlways(2, l.terms[id])
		w.Message(1, term)
	}
	w.Double(2, l.constant)
	return w.Bytes()
}

// LinearFromBytes decodes the format written by Linear.ToBytes.
func LinearFromBytes(b []byte) (Linear, error) {
	r := wire.NewReader(b)
	terms := make(map[ommx.VariableID]float64)
	constant := 0.0
	for {
		f, ok, err := r.Next()
		if err != nil {
			return Linear{}, &ommx.DecodeError{Path: "Linear", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			id, coeff, err := decodeLinearTerm(f.Bytes)
			if err != nil {
				return Linear{}, err
			}
			terms[id] = coeff
		case 2:
			constant = f.AsDouble()
		}
	}
	return NewLinear(terms, constant)
}

func decodeLinearTerm(b []byte) (ommx.VariableID, float64, error) {
	r := wire.NewReader(b)
	var id ommx.VariableID
	var coeff float64
	for {
		f, ok, err := r.Next()
		if err != nil {
			return 0, 0, &ommx.DecodeError{Path: "Linear.term", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			id = ommx.VariableID(f.Varint)
		case 2:
			coeff = f.AsDouble()
		}
	}
	return id, coeff, nil
}

// ToBytes encodes q as: repeated {id1, id2, coeff} terms (field 1) followed
// by the embedded linear remainder (field 2).
func (q Quadratic) ToBytes() []byte {
	w := wire.NewWriter()
	keys := make([]pairKey, 0, len(q.terms))
	for k := range q.terms {
		keys = append(keys, k)
	}
	sortPairKeys(keys)
	for _, k := range keys {
		term := wire.NewWriter()
		term.VarintAlways(1, uint64(k.A))
		term.VarintAlways(2, uint64(k.B))
		term.DoubleAlways(3, q.terms[k])
		w.Message(1, term)
	}
	w.BytesField(2, q.linear.ToBytes())
	return w.Bytes()
}

func sortPairKeys(keys []pairKey) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0; j-- {
			if less(keys[j], keys[j-1]) {
				keys[j], keys[j-1] = keys[j-1], keys[j]
			} else {
				break
			}
		}
	}
}

func less(a, b pairKey) bool {
	if a.A != b.A {
		return a.A < b.A
	}
	return a.B < b.B
}

// QuadraticFromBytes decodes the format written by Quadratic.ToBytes.
func QuadraticFromBytes(b []byte) (Quadratic, error) {
	r := wire.NewReader(b)
	pairs := make(map[pairKey]float64)
	linear := Linear{}
	for {
		f, ok, err := r.Next()
		if err != nil {
			return Quadratic{}, &ommx.DecodeError{Path: "Quadratic", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			a, bID, c, err := decodeQuadraticTerm(f.Bytes)
			if err != nil {
				return Quadratic{}, err
			}
			pairs[newPairKey(a, bID)] = c
		case 2:
			linear, err = LinearFromBytes(f.Bytes)
			if err != nil {
				return Quadratic{}, err
			}
		}
	}
	return NewQuadratic(pairs, linear)
}

func decodeQuadraticTerm(b []byte) (ommx.VariableID, ommx.VariableID, float64, error) {
	r := wire.NewReader(b)
	var a, bID ommx.VariableID
	var c float64
	for {
		f, ok, err := r.Next()
		if err != nil {
			return 0, 0, 0, &ommx.DecodeError{Path: "Quadratic.term", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			a = ommx.VariableID(f.Varint)
		case 2:
			bID = ommx.VariableID(f.Varint)
		case 3:
			c = f.AsDouble()
		}
	}
	return a, bID, c, nil
}

// ToBytes encodes p as: repeated {ids, coeff} monomials (field 1) in
// canonical ascending-key order.
func (p Polynomial) ToBytes() []byte {
	w := wire.NewWriter()
	for _, k := range p.sortedKeys() {
		t := p.terms[k]
		term := wire.NewWriter()
		for _, id := range t.ids {
			term.VarintAlways(1, uint64(id))
		}
		term.DoubleAlways(2, t.coeff)
		w.Message(1, term)
	}
	return w.Bytes()
}

// PolynomialFromBytes decodes the format written by Polynomial.ToBytes.
func PolynomialFromBytes(b []byte) (Polynomial, error) {
	r := wire.NewReader(b)
	terms := make(map[monomialKey]polyTerm)
	for {
		f, ok, err := r.Next()
		if err != nil {
			return Polynomial{}, &ommx.DecodeError{Path: "Polynomial", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		if f.Number != 1 {
			continue
		}
		ids, coeff, err := decodeMonomial(f.Bytes)
		if err != nil {
			return Polynomial{}, err
		}
		key := monomialKeyOf(ids)
		if existing, ok := terms[key]; ok {
			terms[key] = polyTerm{ids: ids, coeff: existing.coeff + coeff}
		} else {
			terms[key] = polyTerm{ids: ids, coeff: coeff}
		}
	}
	for k, t := range terms {
		if t.coeff == 0 {
			delete(terms, k)
		}
	}
	return Polynomial{terms: terms}, nil
}

func decodeMonomial(b []byte) ([]ommx.VariableID, float64, error) {
	r := wire.NewReader(b)
	var ids []ommx.VariableID
	var coeff float64
	for {
		f, ok, err := r.Next()
		if err != nil {
			return nil, 0, &ommx.DecodeError{Path: "Polynomial.monomial", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			ids = append(ids, ommx.VariableID(f.Varint))
		case 2:
			coeff = f.AsDouble()
		}
	}
	return ids, coeff, nil
}

// ToBytes encodes f as a tagged union: field 1 = constant, field 2 =
// linear, field 3 = quadratic, field 4 = polynomial, matching whichever
// variant f currently holds.
func (f Function) ToBytes() []byte {
	w := wire.NewWriter()
	switch f.kind {
	case kindConstant:
		w.DoubleAlways(1, f.constant)
	case kindLinear:
		w.BytesField(2, f.linear.ToBytes())
	case kindQuadratic:
		w.BytesField(3, f.quad.ToBytes())
	default:
		w.BytesField(4, f.poly.ToBytes())
	}
	return w.Bytes()
}

// FunctionFromBytes decodes the format written by Function.ToBytes.
func FunctionFromBytes(b []byte) (Function, error) {
	r := wire.NewReader(b)
	f, ok, err := r.Next()
	if err != nil {
		return Function{}, &ommx.DecodeError{Path: "Function", Reason: "malformed field", Err: err}
	}
	if !ok {
		return FunctionFromConstant(0), nil
	}
	switch f.Number {
	case 1:
		return FunctionFromConstant(f.AsDouble()), nil
	case 2:
		l, err := LinearFromBytes(f.Bytes)
		if err != nil {
			return Function{}, err
		}
		return FunctionFromLinear(l), nil
	case 3:
		q, err := QuadraticFromBytes(f.Bytes)
		if err != nil {
			return Function{}, err
		}
		return FunctionFromQuadratic(q), nil
	case 4:
		p, err := PolynomialFromBytes(f.Bytes)
		if err != nil {
			return Function{}, err
		}
		return FunctionFromPolynomial(p), nil
	default:
		return Function{}, &ommx.DecodeError{Path: "Function", Reason: "unknown variant tag"}
	}
}
