package wayland

// Object ids and opcodes of the interfaces the client speaks.
const (
	displayID uint32 = 1

	// wl_display requests
	displaySync        uint16 = 0
	displayGetRegistry uint16 = 1
	// wl_display events
	displayError    uint16 = 0
	displayDeleteID uint16 = 1

	// wl_registry
	registryBind         uint16 = 0
	registryGlobal       uint16 = 0
	registryGlobalRemove uint16 = 1

	// wl_callback
	callbackDone uint16 = 0

	// wl_compositor
	compositorCreateSurface uint16 = 0

	// wl_surface
	surfaceDestroy uint16 = 0

	// ext_idle_notifier_v1
	idleNotifierGetNotification uint16 = 1

	// ext_idle_notification_v1
	idleNotificationDestroy uint16 = 0
	idleNotificationIdled   uint16 = 0
	idleNotificationResumed uint16 = 1

	// zwp_idle_inhibit_manager_v1
	inhibitManagerCreateInhibitor uint16 = 1

	// zwp_idle_inhibitor_v1
	inhibitorDestroy uint16 = 0
)

const (
	ifaceCompositor     = "wl_compositor"
	ifaceSeat           = "wl_seat"
	ifaceIdleNotifier   = "ext_idle_notifier_v1"
	ifaceInhibitManager = "zwp_idle_inhibit_manager_v1"
)

// maxVersion caps the version bound for each global.
var maxVersion = map[string]uint32{
	ifaceCompositor:     4,
	ifaceSeat:           1,
	ifaceIdleNotifier:   1,
	ifaceInhibitManager: 1,
}
