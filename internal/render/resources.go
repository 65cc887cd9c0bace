package render

import (
	"strings"

	"github.com/aidanlsb/pbapi/internal/api"
)

// AllDataCenters prints the data center listing as fixed-width columns.
func (r *Renderer) AllDataCenters(list any) {
	if !r.short {
		r.Blank()
	}
	r.Line("%-40s %-40s %-9s", "Name", "Data Center ID", "Version")
	r.Line("%-40s %-40s %-9s", strings.Repeat("-", 40), strings.Repeat("-", 40), strings.Repeat("-", 9))
	for _, dc := range api.AsObjects(list) {
		r.Line("%-40s %-40s %-9s", dc.String("dataCenterName"), dc.String("dataCenterId"), dc.String("dataCenterVersion"))
	}
}

// DataCenter prints a data center with its servers and storages.
func (r *Renderer) DataCenter(dc *api.Object) {
	servers := dc.Objects("servers")
	storages := dc.Objects("storages")

	if r.short {
		r.Line("%s is %s", dc.String("dataCenterName"), dc.String("provisioningState"))
	} else {
		r.Blank()
		r.Line("Name: %s", dc.String("dataCenterName"))
		r.Line("Provisioning state: %s", dc.String("provisioningState"))
		r.Line("Version: %s", dc.String("dataCenterVersion"))
		r.Blank()
	}

	r.Line("Servers (%d):", len(servers))
	r.Nested(func() {
		if len(servers) == 0 {
			r.Line(api.Placeholder)
		}
		for _, srv := range servers {
			r.Server(srv)
		}
	})

	if !r.short {
		r.Blank()
	}
	r.Line("Storages (%d):", len(storages))
	r.Nested(func() {
		if len(storages) == 0 {
			r.Line(api.Placeholder)
		}
		for _, st := range storages {
			r.Storage(st)
		}
	})
}

// Server prints a virtual server and its NICs.
func (r *Renderer) Server(srv *api.Object) {
	internet := yesNo(srv.Bool("internetAccess"))
	nics := srv.Objects("nics")

	if r.short {
		r.Line("%s => %s is %s and %s", srv.String("serverName"), srv.String("serverId"),
			srv.String("provisioningState"), srv.String("virtualMachineState"))
		r.Nested(func() {
			r.Line("%s Cores ; %s MiB RAM ; OS: %s ; Internet access [%s]",
				srv.String("cores"), srv.String("ram"), srv.String("osType"), internet)
			for _, nic := range nics {
				r.NIC(nic)
			}
		})
		return
	}

	r.Blank()
	r.Line("Name: %s", srv.String("serverName"))
	r.Line("Server ID: %s", srv.String("serverId"))
	r.Line("Created: [%s] Modified: [%s]", srv.String("creationTime"), srv.String("lastModificationTime"))
	r.Line("Provisioning state: %s", srv.String("provisioningState"))
	r.Line("Virtual machine state: %s", srv.String("virtualMachineState"))
	r.Line("Cores: %s", srv.String("cores"))
	r.Line("RAM: %s MiB", srv.String("ram"))
	r.Line("Internet access: %s", internet)
	r.Line("Operating system: %s", srv.String("osType"))
	ips := "-"
	if srv.Has("ips") {
		ips = joinOrNone(srv.Strings("ips"))
	}
	r.Line("IP Addresses: %s", ips)
	r.Nested(func() {
		for _, nic := range nics {
			r.NIC(nic)
		}
	})
}

// NIC prints a network interface.
func (r *Renderer) NIC(nic *api.Object) {
	ips := joinOrNone(nic.Strings("ips"))
	if r.short {
		kind := "priv"
		if nic.Bool("internetAccess") {
			kind = "inet"
		}
		r.Line("%s (%s) => %s", nic.String("nicName"), kind, ips)
		return
	}
	r.Blank()
	r.Line("Name: %s", nic.String("nicName"))
	r.Line("NIC ID: %s", nic.String("nicId"))
	r.Line("LAN ID: %s", nic.String("lanId"))
	r.Line("Internet access: %s", yesNo(nic.Bool("internetAccess")))
	r.Line("IP Addresses: %s", ips)
	r.Line("MAC Address: %s", nic.String("macAddress"))
	if fw := nic.Object("firewall"); fw != nil {
		r.Line("Firewall:")
		r.Nested(func() { r.Firewall(fw) })
	}
}

// Storage prints a virtual storage and its mounted image.
func (r *Renderer) Storage(st *api.Object) {
	servers := joinOrNone(st.Strings("serverIds"))
	image := st.Object("mountImage")

	if r.short {
		r.Line("%s => %s is %s", st.String("storageName"), st.String("storageId"), st.String("provisioningState"))
		r.Nested(func() {
			r.Line("Size: %s GiB", st.String("size"))
			r.Line("Connected to VM ID: %s", servers)
			if image != nil {
				r.Image(image)
			} else {
				r.Line(api.Placeholder)
			}
		})
		return
	}

	r.Blank()
	r.Line("Name: %s", st.String("storageName"))
	r.Line("Storage ID: %s", st.String("storageId"))
	r.Line("Size: %s GiB", st.String("size"))
	r.Line("Connected to Virtual Servers: %s", servers)
	r.Line("Provisioning state: %s", st.String("provisioningState"))
	r.Line("Operating system: %s", st.String("osType"))
	r.Line("Mount image:")
	r.Nested(func() {
		if image != nil {
			r.Image(image)
		} else {
			r.Line("No image")
		}
	})
}

// Image prints an image.
func (r *Renderer) Image(img *api.Object) {
	if r.short {
		r.Line("Image %s (%s)", img.String("imageName"), img.String("imageId"))
		return
	}
	r.Blank()
	r.Line("Name: %s", img.String("imageName"))
	r.Line("Image ID: %s", img.String("imageId"))
	r.Line("Type: %s", img.String("imageType"))
	r.Line("Writable: %s", yesNo(img.Bool("writeable")))
	r.Line("CPU hot plugging: %s", yesNo(img.Bool("cpuHotpluggable")))
	r.Line("Memory hot plugging: %s", yesNo(img.Bool("memoryHotpluggable")))
	r.Line("Server IDs: %s", joinOrNone(img.Strings("serverIds")))
	r.Line("Operating system: %s", img.String("osType"))
}

// AllImages prints every image in list.
func (r *Renderer) AllImages(list any) {
	for _, img := range api.AsObjects(list) {
		r.Image(img)
	}
}

// PublicIPBlock prints a reserved block of public addresses.
func (r *Renderer) PublicIPBlock(blockID string, ips []string) {
	if !r.short {
		r.Blank()
	}
	r.Line("Block ID: %s", blockID)
	r.Line("IP addresses: %s", joinOrNone(ips))
}

// ReservedIPBlock prints the response of reservePublicIpBlock.
func (r *Renderer) ReservedIPBlock(block *api.Object) {
	r.PublicIPBlock(block.String("blockId"), block.Strings("ips"))
}

// AllPublicIPBlocks prints every block in list. Each block lists its
// addresses as objects carrying an "ip" field.
func (r *Renderer) AllPublicIPBlocks(list any) {
	for _, block := range api.AsObjects(list) {
		var ips []string
		for _, ip := range block.Objects("publicIps") {
			ips = append(ips, ip.String("ip"))
		}
		r.PublicIPBlock(block.String("blockId"), ips)
	}
}
