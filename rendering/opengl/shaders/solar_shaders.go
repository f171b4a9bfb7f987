package shaders

// Mesh shader: spheres and rings. Vertex layout is position, normal, texcoord.
const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 1) in vec3 normal;
layout (location = 2) in vec2 texCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 worldPos;
out vec3 worldNormal;
out vec2 fragTexCoord;

void main() {
    vec4 world = model * vec4(position, 1.0);
    worldPos = world.xyz;
    worldNormal = mat3(transpose(inverse(model))) * normal;
    fragTexCoord = texCoord;
    gl_Position = projection * view * world;
}
`

const meshFragmentShader = `
#version 410 core

in vec3 worldPos;
in vec3 worldNormal;
in vec2 fragTexCoord;
out vec4 outColor;

uniform sampler2D diffuse;
uniform int useTexture;
uniform int lit;
uniform vec4 baseColor;
uniform vec3 lightPos;
uniform float ambient;

void main() {
    vec4 color = useTexture == 1 ? texture(diffuse, fragTexCoord) : baseColor;
    if (color.a < 0.01) {
        discard;
    }
    if (lit == 1) {
        vec3 n = normalize(worldNormal);
        float NdotL = max(dot(n, normalize(lightPos - worldPos)), 0.0);
        color.rgb *= min(ambient + NdotL, 1.0);
    }
    outColor = color;
}
`

// Line shader: orbit paths
const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 position;

uniform mat4 viewProj;

void main() {
    gl_Position = viewProj * vec4(position, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec4 color;
out vec4 outColor;

void main() {
    outColor = color;
}
`

// Point shader: the star field, with per-star size and opacity
const pointVertexShader = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 1) in float size;
layout (location = 2) in float alpha;

uniform mat4 viewProj;
uniform float pointScale;

out float fragAlpha;

void main() {
    gl_Position = viewProj * vec4(position, 1.0);
    gl_PointSize = max(1.0, size * pointScale / gl_Position.w);
    fragAlpha = alpha;
}
`

const pointFragmentShader = `
#version 410 core

in float fragAlpha;
out vec4 outColor;

void main() {
    vec2 c = gl_PointCoord * 2.0 - 1.0;
    if (dot(c, c) > 1.0) {
        discard;
    }
    outColor = vec4(1.0, 1.0, 1.0, fragAlpha);
}
`

// Backdrop shader: a screen-filling triangle showing the background image
const backdropVertexShader = `
#version 410 core

const vec2 positions[3] = vec2[](
    vec2(-1.0, -1.0),
    vec2( 3.0, -1.0),
    vec2(-1.0,  3.0)
);

out vec2 fragTexCoord;

void main() {
    vec2 pos = positions[gl_VertexID];
    fragTexCoord = vec2(pos.x * 0.5 + 0.5, 1.0 - (pos.y * 0.5 + 0.5));
    gl_Position = vec4(pos, 0.999, 1.0);
}
`

const backdropFragmentShader = `
#version 410 core

in vec2 fragTexCoord;
out vec4 outColor;

uniform sampler2D background;

void main() {
    outColor = texture(background, fragTexCoord);
}
`

// Program constructors for each pass
func NewMeshProgram() (uint32, error) { return NewProgram(meshVertexShader, meshFragmentShader) }
func NewLineProgram() (uint32, error) { return NewProgram(lineVertexShader, lineFragmentShader) }
func NewPointProgram() (uint32, error) { return NewProgram(pointVertexShader, pointFragmentShader) }
func NewBackdropProgram() (uint32, error) { return NewProgram(backdropVertexShader, backdropFragmentShader) }
