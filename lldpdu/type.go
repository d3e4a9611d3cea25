package lldpdu

import "strconv"

// Type is the 7-bit type code at the start of every TLV.
type Type uint8

const (
	TypeEnd                      Type = 0
	TypeChassisID                Type = 1
	TypePortID                   Type = 2
	TypeTTL                      Type = 3
	TypePortDescription          Type = 4
	TypeSystemName               Type = 5
	TypeSystemDescription        Type = 6
	TypeSystemCapabilities       Type = 7
	TypeManagementAddress        Type = 8
	TypeOrganizationallySpecific Type = 127
)

var typeNames = map[Type]string{
	TypeEnd:                      "End",
	TypeChassisID:                "ChassisID",
	TypePortID:                   "PortID",
	TypeTTL:                      "TTL",
	TypePortDescription:          "PortDescription",
	TypeSystemName:               "SystemName",
	TypeSystemDescription:        "SystemDescription",
	TypeSystemCapabilities:       "SystemCapabilities",
	TypeManagementAddress:        "ManagementAddress",
	TypeOrganizationallySpecific: "OrganizationallySpecific",
}

// Known reports whether t is one of the registered TLV types.
func (t Type) Known() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}
