package chip

import "fmt"

// PeripheralID is the identifier used for the PMC clock gate and the NVIC
// interrupt line of a peripheral. IDs 0-8 and 10 are always clocked.
type PeripheralID uint8

const (
	IDSupc PeripheralID = iota
	IDRstc
	IDRtc
	IDRtt
	IDWdg
	IDPmc
	IDEefc0
	IDEefc1
	IDUart
	IDSmc
	IDSdramc
	IDPioA
	IDPioB
	IDPioC
	IDPioD
	IDPioE
	IDPioF
	IDUsart0
	IDUsart1
	IDUsart2
	IDUsart3
	IDHsmci
	IDTwi0
	IDTwi1
	IDSpi0
	IDSpi1
	IDSsc
	IDTc0
	IDTc1
	IDTc2
	IDTc3
	IDTc4
	IDTc5
	IDTc6
	IDTc7
	IDTc8
	IDPwm
	IDAdc
	IDDacc
	IDDmac
	IDUotghs
	IDTrng
	IDEmac
	IDCan0
	IDCan1

	numPeripherals
)

var peripheralNames = [numPeripherals]string{
	"SUPC", "RSTC", "RTC", "RTT", "WDT", "PMC", "EFC0", "EFC1", "UART", "SMC",
	"SDRAMC", "PIOA", "PIOB", "PIOC", "PIOD", "PIOE", "PIOF", "USART0", "USART1",
	"USART2", "USART3", "HSMCI", "TWI0", "TWI1", "SPI0", "SPI1", "SSC", "TC0",
	"TC1", "TC2", "TC3", "TC4", "TC5", "TC6", "TC7", "TC8", "PWM", "ADC", "DACC",
	"DMAC", "UOTGHS", "TRNG", "EMAC", "CAN0", "CAN1",
}

// String returns the register-block name of the peripheral (e.g. "PIOA").
func (id PeripheralID) String() string {
	if id >= numPeripherals {
		return fmt.Sprintf("PeripheralID(%d)", uint8(id))
	}
	return peripheralNames[id]
}

// AlwaysClocked reports whether the PMC has no clock gate for the peripheral.
func (id PeripheralID) AlwaysClocked() bool {
	return id <= IDUart || id == IDSdramc
}

// ParsePeripheral maps a register-block name to its ID.
func ParsePeripheral(name string) (PeripheralID, error) {
	for i, n := range peripheralNames {
		if n == name {
			return PeripheralID(i), nil
		}
	}
	return 0, fmt.Errorf("chip: unknown peripheral %q", name)
}

// PIO controller groups, in order.
var pioGroups = []PeripheralID{IDPioA, IDPioB, IDPioC, IDPioD, IDPioE, IDPioF}

// IsPIO reports whether the peripheral is a parallel I/O controller.
func (id PeripheralID) IsPIO() bool {
	return id >= IDPioA && id <= IDPioF
}

// peripheral sets shared by several parts
var (
	corePeripherals = []PeripheralID{
		IDSupc, IDRstc, IDRtc, IDRtt, IDWdg, IDPmc, IDEefc0, IDEefc1, IDUart,
		IDPioA, IDPioB, IDUsart0, IDUsart1, IDUsart2, IDHsmci, IDTwi0, IDTwi1,
		IDSpi0, IDSsc, IDTc0, IDTc1, IDTc2, IDTc3, IDTc4, IDTc5, IDPwm, IDAdc,
		IDDacc, IDDmac, IDUotghs, IDTrng, IDCan0, IDCan1,
	}
	package144Peripherals = []PeripheralID{IDSmc, IDPioC, IDPioD, IDUsart3, IDTc6, IDTc7, IDTc8}
	package217Peripherals = []PeripheralID{IDSdramc, IDPioE, IDPioF}
)

func peripherals(groups ...[]PeripheralID) []PeripheralID {
	var present [numPeripherals]bool
	for _, g := range groups {
		for _, id := range g {
			present[id] = true
		}
	}
	var out []PeripheralID
	for i, ok := range present {
		if ok {
			out = append(out, PeripheralID(i))
		}
	}
	return out
}
