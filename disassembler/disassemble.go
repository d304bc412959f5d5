package disassembler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Urethramancer/y86/cpu"
)

// Disassemble turns a Y86 image loaded at address 0 into assembly source that
// assembles back to the same bytes. Jump and call targets get loc_XXXX labels.
func Disassemble(code []byte) (string, error) {
	return DisassembleWithLabels(code, nil)
}

// DisassembleWithLabels works like Disassemble, but names addresses found in
// labels after their symbols instead of generating loc_XXXX names. Every
// named address that lands on an instruction or data boundary gets a label,
// whether or not anything jumps to it.
func DisassembleWithLabels(code []byte, labels map[uint32]string) (string, error) {
	if len(code) == 0 {
		return "", nil
	}

	// --- STAGE 1: Control Flow Sweep ---
	instructions := make(map[uint32]cpu.DecodedInstruction)
	targets := make(map[uint32]LabelType)
	q := newQueue()
	q.push(0)

	for {
		addr, ok := q.pop()
		if !ok {
			break
		}
		if uint64(addr) >= uint64(len(code)) {
			continue
		}

		d, err := cpu.Decode(code[addr:])
		if err != nil {
			continue
		}
		instructions[addr] = d

		if !isTerminal(d) {
			q.push(addr + uint32(d.Len))
		}
		if target, ok := branchTarget(d); ok {
			if d.ICode() == cpu.ICALL {
				targets[target] = SubroutineEntry
			} else if _, exists := targets[target]; !exists {
				targets[target] = JumpTarget
			}
			q.push(target)
		}
	}

	// --- STAGE 2: Layout ---
	// Walk the image once, taking code where the sweep found it and data
	// elsewhere. Data runs stop at every code start and every target so that
	// labels always fall on a boundary.
	total := uint32(len(code))
	var items []item
	for pc := uint32(0); pc < total; {
		if inst, ok := instructions[pc]; ok {
			items = append(items, item{addr: pc, inst: &inst})
			pc += uint32(inst.Len)
			continue
		}

		end := pc + 1
		for end < total {
			if _, ok := instructions[end]; ok {
				break
			}
			if _, ok := targets[end]; ok {
				break
			}
			if _, ok := labels[end]; ok {
				break
			}
			end++
		}
		items = append(items, item{addr: pc, data: code[pc:end]})
		pc = end
	}

	boundaries := make(map[uint32]bool, len(items))
	for _, it := range items {
		boundaries[it.addr] = true
	}

	// Targets that fall past the end of the image are kept with a trailing
	// .pos; targets inside an instruction cannot be named, so the branch
	// that uses them is emitted as raw bytes.
	named := func(addr uint32) bool {
		return boundaries[addr] || addr >= total
	}

	// --- STAGE 3: Render Final Output ---
	var out strings.Builder
	for _, it := range items {
		if _, ok := targets[it.addr]; ok || labels[it.addr] != "" {
			fmt.Fprintf(&out, "%s:\n", labelFor(it.addr, targets[it.addr], labels))
		}

		if it.inst == nil {
			out.WriteString(formatData(it.data, it.addr))
			continue
		}

		d := *it.inst
		if target, ok := branchTarget(d); ok {
			if !named(target) {
				out.WriteString(formatHexBytes(code[it.addr : it.addr+uint32(d.Len)]))
				continue
			}
			fmt.Fprintf(&out, "    %-8s %s\n", d.Name, labelFor(target, targets[target], labels))
			continue
		}

		if ops := formatOperands(d); ops != "" {
			fmt.Fprintf(&out, "    %-8s %s\n", d.Name, ops)
		} else {
			fmt.Fprintf(&out, "    %s\n", d.Name)
		}
	}

	var beyond []uint32
	for addr := range targets {
		if addr >= total {
			beyond = append(beyond, addr)
		}
	}
	for addr := range labels {
		if _, ok := targets[addr]; !ok && addr >= total {
			beyond = append(beyond, addr)
		}
	}
	sort.Slice(beyond, func(i, j int) bool { return beyond[i] < beyond[j] })
	for _, addr := range beyond {
		fmt.Fprintf(&out, "    %-8s 0x%x\n", ".pos", addr)
		fmt.Fprintf(&out, "%s:\n", labelFor(addr, targets[addr], labels))
	}

	return out.String(), nil
}

// item is one rendered unit: an instruction or a run of data bytes.
type item struct {
	addr uint32
	inst *cpu.DecodedInstruction
	data []byte
}

// addrQueue is a simple worklist queue for addresses to decode.
type addrQueue struct {
	items []uint32
	seen  map[uint32]bool
}

func newQueue() *addrQueue {
	return &addrQueue{seen: make(map[uint32]bool)}
}

func (q *addrQueue) push(addr uint32) {
	if !q.seen[addr] {
		q.items = append(q.items, addr)
		q.seen[addr] = true
	}
}

func (q *addrQueue) pop() (uint32, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}
