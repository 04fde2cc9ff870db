package chip8

import (
	"fmt"
)

// Step executes a single fetch, decode and execute cycle. The program
// counter advances by two before the instruction semantics are applied.
// Errors leave the machine in a consistent state, resuming by calling Step
// again is a host policy decision.
func (v *VM) Step() error {
	address := v.pc
	opcode, err := v.fetch()
	if err != nil {
		return err
	}

	if v.tracer != nil {
		v.trace(address, opcode)
	}

	return v.execute(address, opcode)
}

// fetch reads the two bytes at the program counter as a big-endian opcode
// word and advances the program counter past them.
func (v *VM) fetch() (uint16, error) {
	if v.pc >= MaxAddress {
		return 0, fmt.Errorf("%w: fetch at $%04X", ErrAddressOutOfRange, v.pc)
	}

	opcode := uint16(v.memory[v.pc])<<8 | uint16(v.memory[v.pc+1])
	v.pc += 2
	return opcode, nil
}

// execute dispatches the opcode on its nibble pattern and applies the
// instruction semantics. address is the address the opcode was fetched from,
// used for error reporting.
func (v *VM) execute(address, opcode uint16) error {
	x := registerX(opcode)
	y := registerY(opcode)
	nnn := opcode & 0x0FFF
	nn := byte(opcode)

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x0000: // explicit no-op
		case 0x00E0: // cls
			v.display = [DisplayWidth * DisplayHeight]bool{}
		case 0x00EE: // ret
			returnAddress, err := v.pop()
			if err != nil {
				return fmt.Errorf("%w: return at $%03X", err, address)
			}
			v.pc = returnAddress
		default:
			return unsupportedInstruction(address, opcode)
		}

	case 0x1000: // jp addr
		v.pc = nnn

	case 0x2000: // call addr
		if err := v.push(v.pc); err != nil {
			return fmt.Errorf("%w: call $%03X at $%03X", err, nnn, address)
		}
		v.pc = nnn

	case 0x3000: // se Vx, byte
		if v.v[x] == nn {
			v.pc += 2
		}

	case 0x4000: // sne Vx, byte
		if v.v[x] != nn {
			v.pc += 2
		}

	case 0x5000: // se Vx, Vy
		if opcode&0x000F != 0 {
			return unsupportedInstruction(address, opcode)
		}
		if v.v[x] == v.v[y] {
			v.pc += 2
		}

	case 0x6000: // ld Vx, byte
		v.v[x] = nn

	case 0x7000: // add Vx, byte - wraps without flag effect
		v.v[x] += nn

	case 0x8000:
		return v.executeArithmetic(address, opcode, x, y)

	case 0x9000: // sne Vx, Vy
		if opcode&0x000F != 0 {
			return unsupportedInstruction(address, opcode)
		}
		if v.v[x] != v.v[y] {
			v.pc += 2
		}

	case 0xA000: // ld I, addr
		v.i = nnn

	case 0xB000: // jp V0, addr
		v.pc = uint16(v.v[0]) + nnn

	case 0xC000: // rnd Vx, byte
		v.v[x] = v.random.Byte() & nn

	case 0xD000: // drw Vx, Vy, nibble
		return v.drawSprite(x, y, byte(opcode&0x000F))

	case 0xE000:
		return v.executeKeySkip(address, opcode, x)

	case 0xF000:
		return v.executeMisc(address, opcode, x)
	}

	return nil
}

// executeArithmetic applies the register to register operations of the
// 8xy* opcode group. The flag register V15 is set as a side effect of the
// carry, borrow and shift operations. The shifts write the flag before the
// shift, the arithmetic operations write it after the result; with V15 as
// the operand the later write wins.
func (v *VM) executeArithmetic(address, opcode uint16, x, y byte) error {
	switch opcode & 0x000F {
	case 0x0: // ld Vx, Vy
		v.v[x] = v.v[y]

	case 0x1: // or Vx, Vy
		v.v[x] |= v.v[y]

	case 0x2: // and Vx, Vy
		v.v[x] &= v.v[y]

	case 0x3: // xor Vx, Vy
		v.v[x] ^= v.v[y]

	case 0x4: // add Vx, Vy - VF = 1 on carry
		sum := uint16(v.v[x]) + uint16(v.v[y])
		v.v[x] = byte(sum)
		v.v[0xF] = byte(sum >> 8)

	case 0x5: // sub Vx, Vy - VF = 1 when no borrow occurs
		noBorrow := v.v[x] >= v.v[y]
		v.v[x] -= v.v[y]
		v.v[0xF] = flagByte(noBorrow)

	case 0x6: // shr Vx - VF receives the shifted out low bit
		v.v[0xF] = v.v[x] & 0x01
		v.v[x] >>= 1

	case 0x7: // subn Vx, Vy - VF = 1 when no borrow occurs
		noBorrow := v.v[y] >= v.v[x]
		v.v[x] = v.v[y] - v.v[x]
		v.v[0xF] = flagByte(noBorrow)

	case 0xE: // shl Vx - VF receives the shifted out high bit
		v.v[0xF] = v.v[x] >> 7
		v.v[x] <<= 1

	default:
		return unsupportedInstruction(address, opcode)
	}

	return nil
}

// executeKeySkip applies the key state skip instructions of the Ex** opcode
// group. The key index is taken from Vx and validated against the keypad
// range.
func (v *VM) executeKeySkip(address, opcode uint16, x byte) error {
	var pressedSkips bool
	switch byte(opcode) {
	case 0x9E: // skp Vx
		pressedSkips = true
	case 0xA1: // sknp Vx
	default:
		return unsupportedInstruction(address, opcode)
	}

	key := v.v[x]
	if key >= KeyCount {
		return fmt.Errorf("%w: key V%X=$%02X at $%03X", ErrIndexOutOfRange, x, key, address)
	}

	if v.keys[key] == pressedSkips {
		v.pc += 2
	}
	return nil
}

// executeMisc applies the timer, keypad, address register and memory block
// instructions of the Fx** opcode group.
func (v *VM) executeMisc(address, opcode uint16, x byte) error {
	switch byte(opcode) {
	case 0x07: // ld Vx, DT
		v.v[x] = v.delay

	case 0x0A: // ld Vx, K
		v.waitKey(x)

	case 0x15: // ld DT, Vx
		v.delay = v.v[x]

	case 0x18: // ld ST, Vx
		v.sound = v.v[x]

	case 0x1E: // add I, Vx - wraps at 16 bit
		v.i += uint16(v.v[x])

	case 0x29: // ld F, Vx
		v.i = uint16(v.v[x]) * glyphSize

	case 0x33: // ld B, Vx
		return v.storeBCD(x)

	case 0x55: // ld [I], Vx
		return v.storeRegisters(x)

	case 0x65: // ld Vx, [I]
		return v.loadRegisters(x)

	default:
		return unsupportedInstruction(address, opcode)
	}

	return nil
}

// drawSprite XORs a sprite of the given height onto the display. The sprite
// rows are read from memory starting at the address register, drawing starts
// at the coordinates in Vx and Vy and wraps around the display edges. V15 is
// set to 1 when any toggled pixel was lit before this call, 0 otherwise.
func (v *VM) drawSprite(x, y, height byte) error {
	originX := uint16(v.v[x])
	originY := uint16(v.v[y])

	collision := false
	for row := uint16(0); row < uint16(height); row++ {
		pixels, err := v.readByte(v.i + row)
		if err != nil {
			return err
		}

		for col := uint16(0); col < 8; col++ {
			if pixels&(0x80>>col) == 0 {
				continue
			}

			px := (originX + col) % DisplayWidth
			py := (originY + row) % DisplayHeight
			index := py*DisplayWidth + px

			// a pixel counts as collision based on its state before
			// its own toggle
			collision = collision || v.display[index]
			v.display[index] = !v.display[index]
		}
	}

	v.v[0xF] = flagByte(collision)
	return nil
}

// waitKey scans the keypad for a pressed key. The first pressed key index in
// scan order is stored in Vx. With no key pressed the program counter moves
// back onto this instruction so that the next Step retries the scan.
//
// Quirk: Vx reads the current delay timer value until a key is down.
func (v *VM) waitKey(x byte) {
	v.v[x] = v.delay

	for index, pressed := range v.keys {
		if pressed {
			v.v[x] = byte(index)
			return
		}
	}

	v.pc -= 2
}

// storeBCD writes the decimal digits of Vx to memory at the address
// register: hundreds, tens and ones in consecutive bytes.
func (v *VM) storeBCD(x byte) error {
	value := v.v[x]

	if err := v.writeByte(v.i, value/100); err != nil {
		return err
	}
	if err := v.writeByte(v.i+1, value/10%10); err != nil {
		return err
	}
	return v.writeByte(v.i+2, value%10)
}

// storeRegisters copies the registers V0 to Vx into memory starting at the
// address register.
func (v *VM) storeRegisters(x byte) error {
	for index := byte(0); index <= x; index++ {
		if err := v.writeByte(v.i+uint16(index), v.v[index]); err != nil {
			return err
		}
	}
	return nil
}

// loadRegisters fills the registers V0 to Vx from memory starting at the
// address register.
func (v *VM) loadRegisters(x byte) error {
	for index := byte(0); index <= x; index++ {
		value, err := v.readByte(v.i + uint16(index))
		if err != nil {
			return err
		}
		v.v[index] = value
	}
	return nil
}

// registerX extracts the X register index from an opcode.
func registerX(opcode uint16) byte {
	return byte((opcode & 0x0F00) >> 8)
}

// registerY extracts the Y register index from an opcode.
func registerY(opcode uint16) byte {
	return byte((opcode & 0x00F0) >> 4)
}

// flagByte converts a flag condition to its V15 register value.
func flagByte(set bool) byte {
	if set {
		return 1
	}
	return 0
}

func unsupportedInstruction(address, opcode uint16) error {
	return fmt.Errorf("%w: $%04X at $%03X", ErrUnsupportedInstruction, opcode, address)
}
