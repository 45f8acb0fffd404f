package testsupport

import (
	"testing"

	pkgkml "github.com/goliatone/go-kmlscene/pkg/kml"
)

// Shared KML fixtures for package tests. Each constant is a complete
// document so fixtures parse through the same envelope handling production
// input does.

// SimplePolygonKML is a single unstyled polygon with no hole.
const SimplePolygonKML = `<kml>
  <Document>
    <name>Survey Area</name>
    <Placemark id="area">
      <name>Plot A</name>
      <Polygon>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>10,10 10,20 20,20 20,10</coordinates>
          </LinearRing>
        </outerBoundaryIs>
      </Polygon>
    </Placemark>
  </Document>
</kml>`

// DonutPolygonKML is a polygon with an inner boundary cut out of the outer.
const DonutPolygonKML = `<kml>
  <Document>
    <name>Reservoir</name>
    <Placemark id="reservoir">
      <name>Reservoir Ring</name>
      <Polygon>
        <extrude>1</extrude>
        <altitudeMode>relativeToGround</altitudeMode>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>0,0 0,30 30,30 30,0</coordinates>
          </LinearRing>
        </outerBoundaryIs>
        <innerBoundaryIs>
          <LinearRing>
            <coordinates>10,10 10,20 20,20 20,10</coordinates>
          </LinearRing>
        </innerBoundaryIs>
      </Polygon>
    </Placemark>
  </Document>
</kml>`

// StyledDocumentKML carries a shared style referenced through styleUrl plus
// a description for balloon expansion.
const StyledDocumentKML = `<kml>
  <Document>
    <name>Park Boundaries</name>
    <Style id="green">
      <LineStyle><color>ff00aa00</color><width>2</width></LineStyle>
      <PolyStyle><color>7f00aa00</color></PolyStyle>
    </Style>
    <Placemark id="park">
      <name>Greenwood</name>
      <description>&lt;b&gt;Greenwood&lt;/b&gt; city park</description>
      <styleUrl>#green</styleUrl>
      <Polygon>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>0,0 0,10 10,10 10,0</coordinates>
          </LinearRing>
        </outerBoundaryIs>
      </Polygon>
    </Placemark>
  </Document>
</kml>`

// MultiGeometryKML binds one feature to a polygon plus a point.
const MultiGeometryKML = `<kml>
  <Document>
    <name>Station</name>
    <Placemark id="station">
      <name>Relay Station</name>
      <MultiGeometry>
        <Polygon>
          <outerBoundaryIs>
            <LinearRing>
              <coordinates>0,0 0,5 5,5 5,0</coordinates>
            </LinearRing>
          </outerBoundaryIs>
        </Polygon>
        <Point><coordinates>2.5,2.5</coordinates></Point>
      </MultiGeometry>
    </Placemark>
  </Document>
</kml>`

// FolderedKML groups features into folders so builder tests can assert
// layer assignment.
const FolderedKML = `<kml>
  <Document>
    <name>Field Notes</name>
    <Folder>
      <name>North</name>
      <Placemark id="north-1">
        <name>North Plot</name>
        <Polygon>
          <outerBoundaryIs>
            <LinearRing>
              <coordinates>0,40 0,50 10,50 10,40</coordinates>
            </LinearRing>
          </outerBoundaryIs>
        </Polygon>
      </Placemark>
    </Folder>
    <Folder>
      <name>South</name>
      <Placemark id="south-1">
        <name>South Marker</name>
        <Point><coordinates>5,-45</coordinates></Point>
      </Placemark>
    </Folder>
  </Document>
</kml>`

// ParseFixture parses one of the fixture constants (or any inline KML) into
// a Document backed by a bytes source.
func ParseFixture(t *testing.T, src string) pkgkml.Document {
	t.Helper()
	return MustParseDocument(t, "fixture.kml", src)
}
