package render

import (
	"github.com/aidanlsb/pbapi/internal/api"
)

// LoadBalancer prints a load balancer with its balanced servers and
// firewall.
func (r *Renderer) LoadBalancer(lb *api.Object) {
	r.Line("Load balancer ID: %s", lb.String("loadBalancerId"))
	r.Line("Name: %s", lb.String("loadBalancerName"))
	r.Line("Algorithm: %s", lb.String("loadBalancerAlgorithm"))
	r.Line("IP address: %s", lb.String("ip"))
	r.Line("LAN ID: %s", lb.String("lanId"))
	r.Line("Balanced servers:")
	r.Nested(func() { r.balancedServers(lb) })
	r.Line("Firewall:")
	r.Nested(func() {
		if fw := lb.Object("firewall"); fw != nil {
			r.Firewall(fw)
		} else {
			r.Line(api.Placeholder)
		}
	})
	r.Line("Creation time [%s] modification time [%s]", lb.String("creationTime"), lb.String("lastModificationTime"))
	r.Line("Provisioning state: %s", lb.String("provisioningState"))
}

// LoadBalancerServers prints the response of the operations that change
// which servers a load balancer serves.
func (r *Renderer) LoadBalancerServers(resp *api.Object) {
	r.Line("Load balancer ID: %s", resp.String("loadBalancerId"))
	r.Line("LAN ID: %s", resp.String("lanId"))
	r.balancedServers(resp)
}

func (r *Renderer) balancedServers(obj *api.Object) {
	servers := obj.Objects("balancedServers")
	if len(servers) == 0 {
		r.Line(api.Placeholder)
		return
	}
	for _, srv := range servers {
		r.BalancedServer(srv)
	}
}

// BalancedServer prints one server behind a load balancer.
func (r *Renderer) BalancedServer(srv *api.Object) {
	active := srv.Bool("activate")
	if r.short {
		state := "Inactive"
		if active {
			state = "Active"
		}
		r.Line("%s on server %s (%s) NIC %s", state, srv.String("serverName"), srv.String("serverId"), srv.String("balancedNicId"))
		return
	}
	r.Blank()
	r.Line("Server ID: %s", srv.String("serverId"))
	r.Line("Server name: %s", srv.String("serverName"))
	r.Line("NIC ID: %s", srv.String("balancedNicId"))
	r.Line("Active: %s", yesNo(active))
}

// Firewall prints a firewall and its rules.
func (r *Renderer) Firewall(fw *api.Object) {
	rules := fw.Objects("firewallRules")
	if r.short {
		r.Line("Firewall %s is %s with %d rules", fw.String("firewallId"), activeWord(fw.Bool("active")), len(rules))
		return
	}
	r.Line("Firewall ID: %s", fw.String("firewallId"))
	r.Line("Active: %s", yesNo(fw.Bool("active")))
	r.Line("Provisioning state: %s", fw.String("provisioningState"))
	r.Line("Rules (%d):", len(rules))
	r.Nested(func() {
		if len(rules) == 0 {
			r.Line(api.Placeholder)
		}
		for _, rule := range rules {
			r.FirewallRule(rule)
		}
	})
}

// FirewallRule prints a single rule on one line.
func (r *Renderer) FirewallRule(rule *api.Object) {
	ports := rule.String("portRangeStart")
	if end := rule.String("portRangeEnd"); end != ports {
		ports += ":" + end
	}
	r.Line("%s from %s (%s) to %s port %s icmp %s/%s [%s]",
		rule.String("protocol"), rule.String("sourceIp"), rule.String("sourceMac"),
		rule.String("targetIp"), ports, rule.String("icmpType"), rule.String("icmpCode"),
		rule.String("firewallRuleId"))
}

func activeWord(b bool) string {
	if b {
		return "active"
	}
	return "inactive"
}
