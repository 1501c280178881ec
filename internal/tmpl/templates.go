package tmpl

// InfoPlist is Contents/Info.plist of a macOS bundle.
const InfoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleDevelopmentRegion</key>
	<string>en</string>
	<key>CFBundleDisplayName</key>
	<string>{{title}}</string>
	<key>CFBundleExecutable</key>
	<string>{{executable}}</string>
	<key>CFBundleIconFile</key>
	<string>{{mac_icon}}</string>
	<key>CFBundleIdentifier</key>
	<string>{{bundle_identifier}}</string>
	<key>CFBundleInfoDictionaryVersion</key>
	<string>6.0</string>
	<key>CFBundleName</key>
	<string>{{name}}</string>
	<key>CFBundlePackageType</key>
	<string>APPL</string>
	<key>CFBundleShortVersionString</key>
	<string>{{version}}</string>
	<key>CFBundleVersion</key>
	<string>{{revision}}</string>
	<key>LSApplicationCategoryType</key>
	<string>{{mac_category}}</string>
	<key>LSMinimumSystemVersion</key>
	<string>10.15</string>
	<key>NSHighResolutionCapable</key>
	<true/>
	<key>NSHumanReadableCopyright</key>
	<string>{{copyright}}</string>
</dict>
</plist>
`

// DesktopEntry is usr/share/applications/<name>.desktop of a Debian package.
const DesktopEntry = `[Desktop Entry]
Type=Application
Version=1.0
Name={{title}}
Comment={{description}}
Exec={{linux_executable_path}}
Icon={{linux_icon_path}}
Terminal=false
StartupNotify=true
Categories={{linux_categories}}
`

// DebianControl is DEBIAN/control of a Debian package.
const DebianControl = `Package: {{executable}}
Version: {{version}}-{{revision}}
Architecture: {{arch}}
Maintainer: {{maintainer}}
Homepage: {{homepage}}
Description: {{title}}
 {{description}}
`

// AppxManifest is AppxManifest.xml of a Windows package.
const AppxManifest = `<?xml version="1.0" encoding="utf-8"?>
<Package
  xmlns="http://schemas.microsoft.com/appx/manifest/foundation/windows10"
  xmlns:uap="http://schemas.microsoft.com/appx/manifest/uap/windows10"
  xmlns:rescap="http://schemas.microsoft.com/appx/manifest/foundation/windows10/restrictedcapabilities"
  IgnorableNamespaces="uap rescap">
  <Identity
    Name="{{bundle_identifier}}"
    Publisher="{{win_publisher}}"
    Version="{{win_version}}"
    ProcessorArchitecture="{{arch}}"/>
  <Properties>
    <DisplayName>{{title}}</DisplayName>
    <PublisherDisplayName>{{maintainer}}</PublisherDisplayName>
    <Description>{{description}}</Description>
    <Logo>{{win_logo}}</Logo>
  </Properties>
  <Resources>
    <Resource Language="{{lang}}"/>
  </Resources>
  <Dependencies>
    <TargetDeviceFamily Name="Windows.Desktop" MinVersion="10.0.17763.0" MaxVersionTested="10.0.19041.0"/>
  </Dependencies>
  <Capabilities>
    <rescap:Capability Name="runFullTrust"/>
  </Capabilities>
  <Applications>
    <Application Id="{{name}}" Executable="{{binary_name}}" EntryPoint="Windows.FullTrustApplication">
      <uap:VisualElements
        DisplayName="{{title}}"
        Description="{{description}}"
        Square150x150Logo="{{win_logo}}"
        Square44x44Logo="{{win_logo}}"
        BackgroundColor="transparent"/>
    </Application>
  </Applications>
</Package>
`
