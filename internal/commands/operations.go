package commands

import (
	"github.com/aidanlsb/pbapi/internal/render"
	"github.com/aidanlsb/pbapi/internal/translate"
)

// Common flags.
var (
	flagDcid    = translate.Rule{Flag: "dcid", Param: "dataCenterId", Description: "Data center ID"}
	flagSrvid   = translate.Rule{Flag: "srvid", Param: "serverId", Description: "Server ID"}
	flagStoid   = translate.Rule{Flag: "stoid", Param: "storageId", Description: "Virtual storage ID"}
	flagImgid   = translate.Rule{Flag: "imgid", Param: "imageId", Description: "Image ID"}
	flagNicid   = translate.Rule{Flag: "nicid", Param: "nicId", Description: "NIC ID"}
	flagBid     = translate.Rule{Flag: "bid", Param: "loadBalancerId", Description: "Load balancer ID"}
	flagLanid   = translate.Rule{Flag: "lanid", Param: "lanId", Description: "LAN ID"}
	flagDevnum  = translate.Rule{Flag: "devnum", Param: "deviceNumber", Description: "Device number on the server bus"}
	flagSrvList = translate.Rule{Flag: "srvid", Param: "serverIds", Kind: translate.KindList, Description: "Comma separated server IDs"}
)

// firewallRules translates the flags of a single firewall rule.
var firewallRules = []translate.Rule{
	{Flag: "smac", Param: "sourceMac", Description: "Source MAC address"},
	{Flag: "sip", Param: "sourceIp", Description: "Source IP address"},
	{Flag: "dip", Param: "targetIp", Description: "Target IP address"},
	{Flag: "icmptype", Param: "icmpType", Description: "ICMP type"},
	{Flag: "icmpcode", Param: "icmpCode", Description: "ICMP code"},
	{Flag: "proto", Param: "protocol", Kind: translate.KindEnum, Description: "Protocol: TCP, UDP, ICMP or ANY"},
	{Flag: "port", Param: "portRange", Kind: translate.KindPortRange, Description: "Port or port range start:end"},
}

func rules(rs ...translate.Rule) []translate.Rule { return rs }

var (
	updateDataCenterRules = rules(
		flagDcid,
		translate.Rule{Flag: "name", Param: "dataCenterName", Description: "New data center name"},
	)
	createServerRules = rules(
		translate.Rule{Flag: "cores", Param: "cores", Description: "Number of cores"},
		translate.Rule{Flag: "ram", Param: "ram", Description: "RAM in MiB"},
		translate.Rule{Flag: "bootFromStorageId", Param: "bootFromStorageId", Description: "Storage to boot from"},
		translate.Rule{Flag: "bootFromImageId", Param: "bootFromImageId", Description: "Image to boot from"},
		translate.Rule{Flag: "lanId", Param: "lanId", Description: "LAN to connect the first NIC to"},
		flagDcid,
		translate.Rule{Flag: "name", Param: "serverName", Description: "Server name"},
		translate.Rule{Flag: "ostype", Param: "osType", Kind: translate.KindEnum, Description: "Operating system type"},
		translate.Rule{Flag: "internetaccess", Param: "internetAccess", Kind: translate.KindBool, Description: "Connect to the internet (y/n)"},
	)
	updateServerRules = rules(
		flagSrvid,
		translate.Rule{Flag: "name", Param: "serverName", Description: "Server name"},
		translate.Rule{Flag: "cores", Param: "cores", Description: "Number of cores"},
		translate.Rule{Flag: "ram", Param: "ram", Description: "RAM in MiB"},
		translate.Rule{Flag: "bootFromImageId", Param: "bootFromImageId", Description: "Image to boot from"},
		translate.Rule{Flag: "bootFromStorageId", Param: "bootFromStorageId", Description: "Storage to boot from"},
		translate.Rule{Flag: "osType", Param: "osType", Kind: translate.KindEnum, Description: "Operating system type"},
	)
	createStorageRules = rules(
		flagDcid,
		translate.Rule{Flag: "size", Param: "size", Description: "Size in GiB"},
		translate.Rule{Flag: "name", Param: "storageName", Description: "Storage name"},
		translate.Rule{Flag: "mountImageId", Param: "mountImageId", Description: "Image to mount"},
	)
	connectStorageRules = rules(
		flagStoid,
		flagSrvid,
		translate.Rule{Flag: "bus", Param: "busType", Kind: translate.KindEnum, Description: "Bus type: IDE or VIRTIO"},
		flagDevnum,
	)
	updateStorageRules = rules(
		flagStoid,
		translate.Rule{Flag: "name", Param: "storageName", Description: "Storage name"},
		translate.Rule{Flag: "size", Param: "size", Description: "Size in GiB"},
		translate.Rule{Flag: "mountImageId", Param: "mountImageId", Description: "Image to mount"},
	)
	createLoadBalancerRules = rules(
		flagDcid,
		translate.Rule{Flag: "name", Param: "loadBalancerName", Description: "Load balancer name"},
		translate.Rule{Flag: "ip", Param: "ip", Description: "IP address"},
		flagLanid,
		translate.Rule{Flag: "algo", Param: "loadBalancerAlgorithm", Kind: translate.KindEnum, Description: "Balancing algorithm, e.g. ROUND_ROBIN"},
		flagSrvList,
	)
	addRomDriveRules = rules(flagImgid, flagSrvid, flagDevnum)
	createNicRules   = rules(
		flagSrvid,
		flagLanid,
		translate.Rule{Flag: "name", Param: "nicName", Description: "NIC name"},
		translate.Rule{Flag: "ip", Param: "ip", Description: "IP address"},
	)
	updateNicRules = rules(
		flagNicid,
		flagLanid,
		translate.Rule{Flag: "name", Param: "nicName", Description: "NIC name"},
		translate.Rule{Flag: "ip", Param: "ip", Kind: translate.KindResettable, Description: "IP address, or 'reset' to clear it"},
	)
)

// catalog lists every operation in declaration order.
func catalog() []Operation {
	return []Operation{
		// Data centers
		{
			Name:        "createDataCenter",
			Description: "Create a virtual data center",
			Required:    []string{"name"},
			Flags:       rules(translate.Rule{Flag: "name", Param: "dataCenterName", Description: "Data center name"}),
			Examples:    []string{"pbapi create-data-center -name staging"},
			Run:         positional("createDataCenter", createdID("Data center ID", "dataCenterId"), "name"),
		},
		{
			Name:        "getDataCenter",
			Description: "Show a data center with its servers and storages",
			Required:    []string{"dcid"},
			Flags:       rules(flagDcid),
			Run:         positional("getDataCenter", object((*render.Renderer).DataCenter), "dcid"),
		},
		{
			Name:        "getDataCenterState",
			Description: "Show the provisioning state of a data center",
			Required:    []string{"dcid"},
			Flags:       rules(flagDcid),
			Run: positional("getDataCenterState", func(out *render.Renderer, result any) {
				out.DataCenterState(result)
			}, "dcid"),
		},
		{
			Name:        "getAllDataCenters",
			Description: "List all data centers",
			Run:         positional("getAllDataCenters", (*render.Renderer).AllDataCenters),
		},
		{
			Name:        "updateDataCenter",
			Description: "Rename a data center",
			Required:    []string{"dcid"},
			Flags:       updateDataCenterRules,
			Run:         withParams("updateDataCenter", updateDataCenterRules, completed),
		},
		{
			Name:        "clearDataCenter",
			Description: "Remove every resource from a data center",
			Required:    []string{"dcid"},
			Flags:       rules(flagDcid),
			Run:         positional("clearDataCenter", completed, "dcid"),
		},
		{
			Name:        "deleteDataCenter",
			Description: "Delete an empty data center",
			Required:    []string{"dcid"},
			Flags:       rules(flagDcid),
			Run:         positional("deleteDataCenter", completed, "dcid"),
		},

		// Servers
		{
			Name:        "createServer",
			Description: "Create a virtual server",
			Required:    []string{"cores", "ram"},
			Flags:       createServerRules,
			Examples:    []string{"pbapi create-server -dcid <dcid> -cores 2 -ram 2048 -ostype linux -internetaccess yes"},
			Run:         withParams("createServer", createServerRules, createdID("Server ID", "serverId")),
		},
		{
			Name:        "getServer",
			Description: "Show a virtual server",
			Required:    []string{"srvid"},
			Flags:       rules(flagSrvid),
			Run:         positional("getServer", object((*render.Renderer).Server), "srvid"),
		},
		{
			Name:        "rebootServer",
			Description: "Reboot a virtual server",
			Required:    []string{"srvid"},
			Flags:       rules(flagSrvid),
			Run:         positional("rebootServer", completed, "srvid"),
		},
		{
			Name:        "updateServer",
			Description: "Change the name, size or boot device of a server",
			Required:    []string{"srvid"},
			Flags:       updateServerRules,
			Run:         withParams("updateServer", updateServerRules, completed),
		},
		{
			Name:        "deleteServer",
			Description: "Delete a virtual server",
			Required:    []string{"srvid"},
			Flags:       rules(flagSrvid),
			Run:         positional("deleteServer", completed, "srvid"),
		},

		// Storage
		{
			Name:        "createStorage",
			Description: "Create a virtual storage",
			Required:    []string{"size", "dcid"},
			Flags:       createStorageRules,
			Run:         withParams("createStorage", createStorageRules, createdID("Virtual storage ID", "storageId")),
		},
		{
			Name:        "getStorage",
			Description: "Show a virtual storage",
			Required:    []string{"stoid"},
			Flags:       rules(flagStoid),
			Run:         positional("getStorage", object((*render.Renderer).Storage), "stoid"),
		},
		{
			Name:        "connectStorageToServer",
			Description: "Attach a storage to a server",
			Required:    []string{"stoid", "srvid", "bus"},
			Flags:       connectStorageRules,
			Run:         withParams("connectStorageToServer", connectStorageRules, completed),
		},
		{
			Name:        "disconnectStorageFromServer",
			Description: "Detach a storage from a server",
			Required:    []string{"stoid", "srvid"},
			Flags:       rules(flagStoid, flagSrvid),
			Run:         positional("disconnectStorageFromServer", completed, "stoid", "srvid"),
		},
		{
			Name:        "updateStorage",
			Description: "Change the name, size or mounted image of a storage",
			Required:    []string{"stoid"},
			Flags:       updateStorageRules,
			Run:         withParams("updateStorage", updateStorageRules, completed),
		},
		{
			Name:        "deleteStorage",
			Description: "Delete a virtual storage",
			Required:    []string{"stoid"},
			Flags:       rules(flagStoid),
			Run:         positional("deleteStorage", completed, "stoid"),
		},

		// Load balancers
		{
			Name:        "createLoadBalancer",
			Description: "Create a load balancer",
			Required:    []string{"dcid"},
			Flags:       createLoadBalancerRules,
			Examples:    []string{"pbapi create-load-balancer -dcid <dcid> -algo round_robin -srvid <srv1>,<srv2>"},
			Run:         withParams("createLoadBalancer", createLoadBalancerRules, createdID("Load balancer ID", "loadBalancerId")),
		},
		{
			Name:        "getLoadBalancer",
			Description: "Show a load balancer",
			Required:    []string{"bid"},
			Flags:       rules(flagBid),
			Run:         positional("getLoadBalancer", object((*render.Renderer).LoadBalancer), "bid"),
		},
		{
			Name:        "registerServersOnLoadBalancer",
			Description: "Add servers to a load balancer",
			Required:    []string{"srvid", "bid"},
			Flags:       rules(flagSrvList, flagBid),
			Run:         serverList("registerServersOnLoadBalancer", object((*render.Renderer).LoadBalancerServers)),
		},
		{
			Name:        "deregisterServersOnLoadBalancer",
			Description: "Remove servers from a load balancer",
			Required:    []string{"srvid", "bid"},
			Flags:       rules(flagSrvList, flagBid),
			Run:         serverList("deregisterServersOnLoadBalancer", completed),
		},
		{
			Name:        "activateLoadBalancingOnServer",
			Description: "Resume balancing traffic to servers",
			Required:    []string{"srvid", "bid"},
			Flags:       rules(flagSrvList, flagBid),
			Run:         serverList("activateLoadBalancingOnServers", completed),
		},
		{
			Name:        "deactivateLoadBalancingOnServer",
			Description: "Stop balancing traffic to servers",
			Required:    []string{"srvid", "bid"},
			Flags:       rules(flagSrvList, flagBid),
			Run:         serverList("deactivateLoadBalancingOnServers", completed),
		},
		{
			Name:        "deleteLoadBalancer",
			Description: "Delete a load balancer",
			Required:    []string{"bid"},
			Flags:       rules(flagBid),
			Run:         positional("deleteLoadBalancer", completed, "bid"),
		},

		// Images
		{
			Name:        "addRomDriveToServer",
			Description: "Insert an image as a CD-ROM drive",
			Required:    []string{"imgid", "srvid"},
			Flags:       addRomDriveRules,
			Run:         withParams("addRomDriveToServer", addRomDriveRules, completed),
		},
		{
			Name:        "removeRomDriveFromServer",
			Description: "Remove a CD-ROM drive",
			Required:    []string{"imgid", "srvid"},
			Flags:       rules(flagImgid, flagSrvid),
			Run:         positional("removeRomDriveFromServer", completed, "imgid", "srvid"),
		},
		{
			Name:        "setImageOsType",
			Description: "Set the operating system type of an image",
			Required:    []string{"imgid", "ostype"},
			Flags:       rules(flagImgid, translate.Rule{Flag: "ostype", Param: "osType", Kind: translate.KindEnum, Description: "Operating system type"}),
			Run:         setImageOsType,
		},
		{
			Name:        "getImage",
			Description: "Show an image",
			Required:    []string{"imgid"},
			Flags:       rules(flagImgid),
			Run:         positional("getImage", object((*render.Renderer).Image), "imgid"),
		},
		{
			Name:        "getAllImages",
			Description: "List all images",
			Run:         positional("getAllImages", (*render.Renderer).AllImages),
		},
		{
			Name:        "deleteImage",
			Description: "Delete an image",
			Required:    []string{"imgid"},
			Flags:       rules(flagImgid),
			Run:         positional("deleteImage", completed, "imgid"),
		},

		// NICs
		{
			Name:        "createNic",
			Description: "Add a NIC to a server",
			Required:    []string{"srvid", "lanid"},
			Flags:       createNicRules,
			Run:         withParams("createNic", createNicRules, completed),
		},
		{
			Name:        "getNic",
			Description: "Show a NIC",
			Required:    []string{"nicid"},
			Flags:       rules(flagNicid),
			Run:         positional("getNic", object((*render.Renderer).NIC), "nicid"),
		},
		{
			Name:        "enableInternetAccess",
			Description: "Connect a LAN to the internet",
			Required:    []string{"dcid", "lanid"},
			Flags:       rules(flagDcid, flagLanid),
			Run:         internetAccess(true),
		},
		{
			Name:        "disableInternetAccess",
			Description: "Disconnect a LAN from the internet",
			Required:    []string{"dcid", "lanid"},
			Flags:       rules(flagDcid, flagLanid),
			Run:         internetAccess(false),
		},
		{
			Name:        "updateNic",
			Description: "Change the LAN, name or address of a NIC",
			Required:    []string{"nicid", "lanid"},
			Flags:       updateNicRules,
			Run:         withParams("updateNic", updateNicRules, completed),
		},
		{
			Name:        "deleteNic",
			Description: "Delete a NIC",
			Required:    []string{"nicid"},
			Flags:       rules(flagNicid),
			Run:         positional("deleteNic", completed, "nicid"),
		},

		// Public IPs
		{
			Name:        "reservePublicIpBlock",
			Description: "Reserve a block of public IP addresses",
			Required:    []string{"size"},
			Flags:       rules(translate.Rule{Flag: "size", Param: "blockSize", Description: "Number of addresses"}),
			Run:         positional("reservePublicIpBlock", object((*render.Renderer).ReservedIPBlock), "size"),
		},
		{
			Name:        "addPublicIpToNic",
			Description: "Assign a reserved public IP to a NIC",
			Required:    []string{"ip", "nicid"},
			Flags:       rules(translate.Rule{Flag: "ip", Param: "ip", Description: "Public IP address"}, flagNicid),
			Run:         positional("addPublicIpToNic", completed, "ip", "nicid"),
		},
		{
			Name:        "getAllPublicIpBlocks",
			Description: "List reserved public IP blocks",
			Run:         positional("getAllPublicIpBlocks", (*render.Renderer).AllPublicIPBlocks),
		},
		{
			Name:        "removePublicIpFromNic",
			Description: "Remove a public IP from a NIC",
			Required:    []string{"ip", "nicid"},
			Flags:       rules(translate.Rule{Flag: "ip", Param: "ip", Description: "Public IP address"}, flagNicid),
			Run:         positional("removePublicIpFromNic", completed, "ip", "nicid"),
		},
		{
			Name:        "releasePublicIpBlock",
			Description: "Release a reserved public IP block",
			Required:    []string{"blockid"},
			Flags:       rules(translate.Rule{Flag: "blockid", Param: "blockId", Description: "Block ID"}),
			Run:         positional("releasePublicIpBlock", completed, "blockid"),
		},

		// Firewalls
		{
			Name:        "addFirewallRuleToNic",
			Description: "Add a firewall rule to a NIC",
			Required:    []string{"nicid"},
			Flags:       append(rules(flagNicid), firewallRules...),
			Examples:    []string{"pbapi add-firewall-rule-to-nic -nicid <nicid> -proto tcp -port 22 -sip 203.0.113.4"},
			Run:         firewallRule("addFirewallRuleToNic", "nicid"),
		},
		{
			Name:        "addFirewallRuleToLoadBalancer",
			Description: "Add a firewall rule to a load balancer",
			Required:    []string{"bid"},
			Flags:       append(rules(flagBid), firewallRules...),
			Run:         firewallRule("addFirewallRuleToLoadBalancer", "bid"),
		},

		// Meta-operations
		{
			Name:        "@list",
			Description: "List available operations",
			Internal:    true,
			RunLocal:    listOperations,
		},
		{
			Name:        "@list-simple",
			Description: "List operation names only",
			Internal:    true,
			RunLocal:    listOperationNames,
		},
		{
			Name:        "@describe",
			Description: "Print the operation catalog as YAML",
			Internal:    true,
			RunLocal:    describeOperations,
		},
		{
			Name:        "@history",
			Description: "Show recent remote calls",
			Internal:    true,
			RunLocal:    showHistory,
		},
	}
}
