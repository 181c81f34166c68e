package universe

import "strings"

// Liquid symbols per exchange, used as the default radar universe
var (
	HOSE = []string{
		"ACB", "BCM", "BID", "BVH", "CTG", "FPT", "GAS", "GVR", "HDB", "HPG",
		"MBB", "MSN", "MWG", "PLX", "POW", "SAB", "SHB", "SSB", "SSI", "STB",
		"TCB", "TPB", "VCB", "VHM", "VIB", "VIC", "VJC", "VNM", "VPB", "VRE",
		"DIG", "DGC", "DXG", "GEX", "HSG", "KBC", "NKG", "NLG", "NVL", "PDR",
		"REE", "VCI", "VIX", "VND",
	}

	HNX = []string{
		"SHS", "CEO", "PVS", "IDC", "MBS", "HUT", "TNG", "VCS", "NTP", "LAS",
	}

	UPCOM = []string{
		"BSR", "OIL", "VEA", "VGI", "MCH", "QNS", "ACV", "VGT", "SIP", "VTP",
	}
)

// List returns the symbol universe for an exchange name; anything
// unrecognized returns the full market.
func List(exchange string) []string {
	switch strings.ToUpper(exchange) {
	case "HOSE":
		return HOSE
	case "HNX":
		return HNX
	case "UPCOM":
		return UPCOM
	}
	all := make([]string, 0, len(HOSE)+len(HNX)+len(UPCOM))
	all = append(all, HOSE...)
	all = append(all, HNX...)
	all = append(all, UPCOM...)
	return all
}
