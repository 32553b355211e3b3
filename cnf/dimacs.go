package cnf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/crillab/varsat/kconfig"
)

// WriteDIMACS writes r's clauses to w in the DIMACS format extended
// with the "c sym"/"c var"/"c meta_value" comment lines of §6. Named
// variables and metadata keys are emitted in sorted order so the
// output is deterministic across runs.
func WriteDIMACS(w io.Writer, r *Registry) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, "c File Format Version: 2.0"); err != nil {
		return err
	}

	symNames := make([]string, 0, len(r.SymbolTypes))
	for name := range r.SymbolTypes {
		symNames = append(symNames, name)
	}
	sort.Strings(symNames)
	for _, name := range symNames {
		if _, err := fmt.Fprintf(bw, "c sym %s %d\n", name, r.SymbolTypes[name].TypeID()); err != nil {
			return err
		}
	}

	varNames := make([]string, 0, len(r.CNFVars))
	for name := range r.CNFVars {
		varNames = append(varNames, name)
	}
	sort.Strings(varNames)
	for _, name := range varNames {
		if _, err := fmt.Fprintf(bw, "c var %s %d\n", name, r.CNFVars[name]); err != nil {
			return err
		}
	}

	metaKeys := make([]string, 0, len(r.Meta))
	for key := range r.Meta {
		metaKeys = append(metaKeys, key)
	}
	sort.Strings(metaKeys)
	for _, key := range metaKeys {
		line := "c meta_value " + key
		for _, v := range r.Meta[key] {
			line += " " + v
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", r.VarCount, r.ClauseCount()); err != nil {
		return err
	}
	for _, clause := range r.Clauses {
		strs := make([]string, len(clause)+1)
		for i, lit := range clause {
			strs[i] = strconv.Itoa(lit)
		}
		strs[len(clause)] = "0"
		if _, err := fmt.Fprintln(bw, strings.Join(strs, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadDIMACS parses a DIMACS file with the §6 comment extensions. It
// accepts any ordering of "c" lines before "p cnf" and ignores unknown
// comment lines. The returned Registry uses ConstantPolicy Bound and
// no whitelist; it is intended for solving and inspection, not for
// further Encode calls against fresh expressions.
func ReadDIMACS(r io.Reader) (*Registry, error) {
	reg := NewRegistry(Bound, nil)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sawHeader := false
	declaredVars := 0
	declaredClauses := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "c") {
			if err := readComment(reg, line); err != nil {
				return nil, fmt.Errorf("cnf: line %d: %w", lineNo, err)
			}
			continue
		}
		if strings.HasPrefix(line, "p") {
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return nil, fmt.Errorf("cnf: line %d: malformed problem line %q", lineNo, line)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("cnf: line %d: bad var count: %w", lineNo, err)
			}
			m, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("cnf: line %d: bad clause count: %w", lineNo, err)
			}
			declaredVars, declaredClauses = n, m
			reg.VarCount = n
			sawHeader = true
			continue
		}
		if !sawHeader {
			return nil, fmt.Errorf("cnf: line %d: clause before problem line", lineNo)
		}
		clause, err := parseClauseLine(line)
		if err != nil {
			return nil, fmt.Errorf("cnf: line %d: %w", lineNo, err)
		}
		reg.addClause(clause...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cnf: reading DIMACS: %w", err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("cnf: missing problem line")
	}
	if reg.ClauseCount() != declaredClauses {
		return nil, fmt.Errorf("cnf: declared %d clauses, read %d", declaredClauses, reg.ClauseCount())
	}
	_ = declaredVars
	return reg, nil
}

func readComment(reg *Registry, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil // bare "c" or "c <freeform>" line, ignored
	}
	switch fields[1] {
	case "sym":
		if len(fields) != 4 {
			return nil
		}
		id, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil
		}
		t, err := kconfig.SymbolTypeFromTypeID(id)
		if err != nil {
			return nil
		}
		reg.SymbolTypes[fields[2]] = t
	case "var":
		if len(fields) != 4 {
			return nil
		}
		id, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil
		}
		reg.CNFVars[fields[2]] = id
		reg.BoolVars[id] = fields[2]
		if id > reg.VarCount {
			reg.VarCount = id
		}
	case "meta_value":
		if len(fields) < 3 {
			return nil
		}
		key := fields[2]
		reg.Meta[key] = append(reg.Meta[key], fields[3:]...)
	}
	return nil
}

func parseClauseLine(line string) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[len(fields)-1] != "0" {
		return nil, fmt.Errorf("clause line missing terminating 0: %q", line)
	}
	lits := make([]int, 0, len(fields)-1)
	for _, f := range fields[:len(fields)-1] {
		lit, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid literal %q", f)
		}
		lits = append(lits, lit)
	}
	return lits, nil
}
