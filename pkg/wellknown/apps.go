// Package wellknown carries the Junos predefined applications that SRX
// policies reference by name. The device does not expand these in its
// exports, so consumers that want ports for names like "junos-ssh" resolve
// them here.
package wellknown

import "fmt"

// Application is one predefined Junos application.
type Application struct {
	Name      string
	Protocol  string // "tcp", "udp", or another IP protocol name
	StartPort int
	EndPort   int
}

func (a Application) String() string {
	if a.StartPort == 0 {
		return fmt.Sprintf("%s (%s)", a.Name, a.Protocol)
	}
	if a.EndPort != a.StartPort {
		return fmt.Sprintf("%s (%s/%d-%d)", a.Name, a.Protocol, a.StartPort, a.EndPort)
	}
	return fmt.Sprintf("%s (%s/%d)", a.Name, a.Protocol, a.StartPort)
}

// applications is based on the official Junos OS predefined application
// list. Junos application names are lowercase and matched exactly.
var applications = map[string]Application{
	"junos-ftp":    {Name: "junos-ftp", Protocol: "tcp", StartPort: 21, EndPort: 21},
	"junos-ssh":    {Name: "junos-ssh", Protocol: "tcp", StartPort: 22, EndPort: 22},
	"junos-telnet": {Name: "junos-telnet", Protocol: "tcp", StartPort: 23, EndPort: 23},
	"junos-smtp":   {Name: "junos-smtp", Protocol: "tcp", StartPort: 25, EndPort: 25},
	"junos-smtps":  {Name: "junos-smtps", Protocol: "tcp", StartPort: 465, EndPort: 465},
	"junos-http":   {Name: "junos-http", Protocol: "tcp", StartPort: 80, EndPort: 80},
	"junos-https":  {Name: "junos-https", Protocol: "tcp", StartPort: 443, EndPort: 443},

	"junos-dns-udp": {Name: "junos-dns-udp", Protocol: "udp", StartPort: 53, EndPort: 53},
	"junos-dns-tcp": {Name: "junos-dns-tcp", Protocol: "tcp", StartPort: 53, EndPort: 53},

	"junos-pop3":  {Name: "junos-pop3", Protocol: "tcp", StartPort: 110, EndPort: 110},
	"junos-imap":  {Name: "junos-imap", Protocol: "tcp", StartPort: 143, EndPort: 143},
	"junos-imaps": {Name: "junos-imaps", Protocol: "tcp", StartPort: 993, EndPort: 993},

	"junos-dhcp-client": {Name: "junos-dhcp-client", Protocol: "udp", StartPort: 68, EndPort: 68},
	"junos-dhcp-server": {Name: "junos-dhcp-server", Protocol: "udp", StartPort: 67, EndPort: 67},
	"junos-tftp":        {Name: "junos-tftp", Protocol: "udp", StartPort: 69, EndPort: 69},

	"junos-ntp":    {Name: "junos-ntp", Protocol: "udp", StartPort: 123, EndPort: 123},
	"junos-snmp":   {Name: "junos-snmp", Protocol: "udp", StartPort: 161, EndPort: 161},
	"junos-syslog": {Name: "junos-syslog", Protocol: "udp", StartPort: 514, EndPort: 514},

	"junos-bgp": {Name: "junos-bgp", Protocol: "tcp", StartPort: 179, EndPort: 179},
	"junos-rip": {Name: "junos-rip", Protocol: "udp", StartPort: 520, EndPort: 520},

	"junos-ldap":   {Name: "junos-ldap", Protocol: "tcp", StartPort: 389, EndPort: 389},
	"junos-tacacs": {Name: "junos-tacacs", Protocol: "tcp", StartPort: 49, EndPort: 49},
	"junos-radius": {Name: "junos-radius", Protocol: "udp", StartPort: 1812, EndPort: 1812},

	"junos-ike":  {Name: "junos-ike", Protocol: "udp", StartPort: 500, EndPort: 500},
	"junos-l2tp": {Name: "junos-l2tp", Protocol: "udp", StartPort: 1701, EndPort: 1701},
	"junos-gre":  {Name: "junos-gre", Protocol: "gre"},

	"junos-smb":             {Name: "junos-smb", Protocol: "tcp", StartPort: 445, EndPort: 445},
	"junos-netbios-session": {Name: "junos-netbios-session", Protocol: "tcp", StartPort: 139, EndPort: 139},
	"junos-ms-sql":          {Name: "junos-ms-sql", Protocol: "tcp", StartPort: 1433, EndPort: 1433},

	"junos-sun-rpc-tcp": {Name: "junos-sun-rpc-tcp", Protocol: "tcp", StartPort: 111, EndPort: 111},
	"junos-sun-rpc-udp": {Name: "junos-sun-rpc-udp", Protocol: "udp", StartPort: 111, EndPort: 111},
	"junos-nfsd-tcp":    {Name: "junos-nfsd-tcp", Protocol: "tcp", StartPort: 2049, EndPort: 2049},
	"junos-nfsd-udp":    {Name: "junos-nfsd-udp", Protocol: "udp", StartPort: 2049, EndPort: 2049},

	"junos-sip":  {Name: "junos-sip", Protocol: "udp", StartPort: 5060, EndPort: 5060},
	"junos-h323": {Name: "junos-h323", Protocol: "tcp", StartPort: 1720, EndPort: 1720},

	"junos-icmp-ping":      {Name: "junos-icmp-ping", Protocol: "icmp"},
	"junos-icmp-all":       {Name: "junos-icmp-all", Protocol: "icmp"},
	"junos-ping":           {Name: "junos-ping", Protocol: "icmp"},
	"junos-aol":            {Name: "junos-aol", Protocol: "tcp", StartPort: 5190, EndPort: 5193},
	"junos-xnm-ssl":        {Name: "junos-xnm-ssl", Protocol: "tcp", StartPort: 3220, EndPort: 3220},
	"junos-xnm-clear-text": {Name: "junos-xnm-clear-text", Protocol: "tcp", StartPort: 3221, EndPort: 3221},
}

// GetApplication returns the predefined application for a policy
// application name.
func GetApplication(name string) (Application, bool) {
	app, ok := applications[name]
	return app, ok
}
