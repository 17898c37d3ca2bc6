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

package interop

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// SaveMPS writes inst to path in free-form MPS. Only linear objectives and
// constraints can be represented; a quadratic or higher-degree Function
// fails with EncodeError. When compress is true the file is gzipped.
func SaveMPS(inst *instance.Instance, path string, compress bool) error {
	objLinear, ok := inst.Objective().AsLinear()
	if !ok {
		return &ommx.EncodeError{Reason: "MPS can only represent a linear objective"}
	}

	vars := inst.DecisionVariables()
	cons := inst.Constraints()
	rowLinears := make(map[ommx.ConstraintID]polynomial.Linear, len(cons))
	rowNames := make(map[ommx.ConstraintID]string, len(cons))
	for _, c := range cons {
		l, ok := c.Function().AsLinear()
		if !ok {
			return &ommx.EncodeError{Reason: fmt.Sprintf("MPS can only represent linear constraints, constraint %d is not linear", c.ID())}
		}
		rowLinears[c.ID()] = l
		rowNames[c.ID()] = fmt.Sprintf("c%d", c.ID())
	}

	f, err := os.Create(path)
	if err != nil {
		return &ommx.IoError{Context: "creating MPS file", Err: errors.WithStack(err)}
	}
	defer f.Close()

	var w *bufio.Writer
	if compress {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = bufio.NewWriter(gz)
	} else {
		w = bufio.NewWriter(f)
	}
	defer w.Flush()

	writeMPSSections(w, vars, cons, objLinear, rowLinears, rowNames)
	return nil
}

func writeMPSSections(
	w *bufio.Writer,
	vars []instance.DecisionVariable,
	cons []instance.Constraint,
	objLinear polynomial.Linear,
	rowLinears map[ommx.ConstraintID]polynomial.Linear,
	rowNames map[ommx.ConstraintID]string,
) {
	fmt.Fprintln(w, "NAME")

	fmt.Fprintln(w, "ROWS")
	fmt.Fprintln(w, " N  obj")
	for _, c := range cons {
		kind := "L"
		if c.Equality() == ommx.EqZero {
			kind = "E"
		}
		fmt.Fprintf(w, " %s  %s\n", kind, rowNames[c.ID()])
	}

	fmt.Fprintln(w, "COLUMNS")
	inInteger := false
	for _, v := range vars {
		if v.Kind() == ommx.Integer && !inInteger {
			fmt.Fprintln(w, "    MARKER                 'MARKER'                 'INTORG'")
			inInteger = true
		}
		if v.Kind() != ommx.Integer && inInteger {
			fmt.Fprintln(w, "    MARKER                 'MARKER'                 'INTEND'")
			inInteger = false
		}
		name := fmt.Sprintf("x%d", v.ID())
		if coeff, ok := objLinear.Terms()[v.ID()]; ok {
			fmt.Fprintf(w, "    %s  obj  %g\n", name, coeff)
		}
		for _, c := range cons {
			if coeff, ok := rowLinears[c.ID()].Terms()[v.ID()]; ok {
				fmt.Fprintf(w, "    %s  %s  %g\n", name, rowNames[c.ID()], coeff)
			}
		}
	}
	if inInteger {
		fmt.Fprintln(w, "    MARKER                 'MARKER'                 'INTEND'")
	}

	fmt.Fprintln(w, "RHS")
	if objLinear.Constant() != 0 {
		fmt.Fprintf(w, "    RHS  obj  %g\n", -objLinear.Constant())
	}
	ids := make([]ommx.ConstraintID, 0, len(cons))
	for _, c := range cons {
		ids = append(ids, c.ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if rhs := -rowLinears[id].Constant(); rhs != 0 {
			fmt.Fprintf(w, "    RHS  %s  %g\n", rowNames[id], rhs)
		}
	}

	fmt.Fprintln(w, "BOUNDS")
	for _, v := range vars {
		name := fmt.Sprintf("x%d", v.ID())
		if v.Kind() == ommx.Binary {
			fmt.Fprintf(w, " BV BND  %s\n", name)
			continue
		}
		b := v.Bound()
		if b.Lower != 0 {
			fmt.Fprintf(w, " LO BND  %s  %g\n", name, b.Lower)
		}
		fmt.Fprintf(w, " UP BND  %s  %g\n", name, b.Upper)
	}

	fmt.Fprintln(w, "ENDATA")
}
